package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hurou927/prereq-graph/internal/config"
	"github.com/hurou927/prereq-graph/internal/graph"
	"github.com/hurou927/prereq-graph/internal/logger"
	"github.com/hurou927/prereq-graph/internal/metrics"
	"github.com/hurou927/prereq-graph/internal/output"
)

var (
	analyzeFormat string
	outputPath    string
	metricsFile   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the prerequisite graph and write its structure",
	Long: `Loads the catalog, builds the prerequisite graph, finds its connected components
and writes nodes, edges, components and statistics in the chosen format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("format") {
			cfg.Output.Format = analyzeFormat
		}
		if flags.Changed("output") {
			cfg.Output.Path = outputPath
		}
		if flags.Changed("metrics-file") {
			cfg.MetricsFile = metricsFile
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		courses, err := loadCatalog(cmd.Context(), &cfg.Catalog)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := graph.Run(courses)
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}
		elapsed := time.Since(start)

		logResult(res, elapsed)

		if cfg.MetricsFile != "" {
			reg := metrics.NewRegistry()
			reg.RecordAnalysis(res, elapsed)
			if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
				return err
			}
		}

		return writeResult(cmd.OutOrStdout(), cfg.Output, res)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", config.FormatJSON, "output format: json, text, mermaid or sql")
	analyzeCmd.Flags().StringVar(&outputPath, "output", "", `output file path, "-" for stdout (overrides config)`)
	analyzeCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	rootCmd.AddCommand(analyzeCmd)
}

func logResult(res *graph.Result, elapsed time.Duration) {
	st := res.Statistics
	logger.Info().
		Int("nodes", st.TotalNodes).
		Int("edges", st.TotalEdges).
		Int("components", st.ComponentCount).
		Int("largest_component", st.LargestComponentSize).
		Int("isolated", st.IsolatedCount).
		Dur("elapsed", elapsed).
		Msg("graph analyzed")

	for _, d := range res.Dangling {
		logger.Warn().
			Str("course", d.Course).
			Str("prerequisite", d.Prerequisite).
			Msg("prerequisite not in catalog, no edge created")
	}

	if topo := graph.TopoSortAll(res.Graph); topo.HasCycle {
		logger.Warn().Strs("courses", topo.Cycle).Msg("prerequisite cycle detected")
	}
}

// writeResult writes res to out.Path, or to stdout when the path is empty or "-".
func writeResult(stdout io.Writer, out config.Output, res *graph.Result) error {
	w := stdout
	if out.Path != "" && out.Path != "-" {
		f, err := os.Create(out.Path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch out.Format {
	case config.FormatJSON:
		err = output.WriteJSON(w, res)
	case config.FormatText:
		err = graph.WriteText(w, res)
	case config.FormatMermaid:
		err = graph.WriteMermaid(w, res)
	case config.FormatSQL:
		err = output.WriteSQL(w, res)
	default:
		return fmt.Errorf("unknown format: %s (supported: json, text, mermaid, sql)", out.Format)
	}
	if err != nil {
		return fmt.Errorf("writing %s output: %w", out.Format, err)
	}

	if w != stdout {
		logger.Info().Str("path", out.Path).Str("format", out.Format).Msg("output written")
	}
	return nil
}
