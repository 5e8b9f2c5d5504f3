package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurou927/prereq-graph/internal/graph"
)

var planCmd = &cobra.Command{
	Use:   "plan COURSE...",
	Short: "List the courses needed before the given courses, in study order",
	Long: `Resolves every transitive prerequisite of the given course codes and prints
them together with the courses themselves, each prerequisite before the courses
that require it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		courses, err := loadCatalog(cmd.Context(), &cfg.Catalog)
		if err != nil {
			return err
		}

		g, err := graph.Build(courses)
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}

		order, err := graph.Plan(g, args)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for i, id := range order {
			n, _ := g.Node(id)
			if _, err := fmt.Fprintf(w, "%d. %s: %s\n", i+1, n.Code, n.FullName); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
