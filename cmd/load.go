package cmd

import (
	"context"
	"fmt"

	"github.com/hurou927/prereq-graph/internal/catalog"
	"github.com/hurou927/prereq-graph/internal/config"
	"github.com/hurou927/prereq-graph/internal/db"
	"github.com/hurou927/prereq-graph/internal/logger"
)

// loadCatalog reads course records from the configured source.
func loadCatalog(ctx context.Context, c *config.Catalog) ([]catalog.Course, error) {
	var (
		courses []catalog.Course
		err     error
	)

	switch c.Source {
	case config.SourcePostgres:
		pool, perr := db.NewPool(ctx, &c.Connection)
		if perr != nil {
			return nil, fmt.Errorf("connecting to database: %w", perr)
		}
		defer pool.Close()

		courses, err = catalog.LoadPostgres(ctx, pool, c.Table, c.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("loading catalog from %s: %w", c.Table, err)
		}
		log := logger.With("table", c.Table)
		log.Debug().Int("courses", len(courses)).Msg("catalog loaded")

	default:
		if c.Path == "" {
			return nil, fmt.Errorf("catalog path is required (--catalog or catalog.path)")
		}
		courses, err = catalog.LoadFile(c.Path, c.Format)
		if err != nil {
			return nil, fmt.Errorf("loading catalog %s: %w", c.Path, err)
		}
		log := logger.With("path", c.Path)
		log.Debug().Int("courses", len(courses)).Msg("catalog loaded")
	}

	return courses, nil
}
