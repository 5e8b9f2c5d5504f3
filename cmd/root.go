package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hurou927/prereq-graph/internal/config"
	"github.com/hurou927/prereq-graph/internal/logger"
)

var (
	cfgPath       string
	catalogPath   string
	catalogFormat string
	catalogSource string
	logLevel      string
	logPretty     bool
	cfg           *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prereq-graph",
	Short: "Build and analyze a course prerequisite graph",
	Long: `prereq-graph reads a course catalog, builds a directed graph of prerequisite
relationships and reports how courses cluster into connected components.
The catalog comes from a JSON or YAML document or a PostgreSQL table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}

		flags := cmd.Flags()
		if flags.Changed("catalog") {
			cfg.Catalog.Path = catalogPath
		}
		if flags.Changed("catalog-format") {
			cfg.Catalog.Format = catalogFormat
		}
		if flags.Changed("source") {
			cfg.Catalog.Source = catalogSource
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if flags.Changed("log-pretty") {
			cfg.Log.Pretty = logPretty
		}

		return logger.Configure(logger.Config{
			Level:  cfg.Log.Level,
			Pretty: cfg.Log.Pretty,
			Output: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to YAML config file")
	pf.StringVar(&catalogPath, "catalog", "", `catalog document path, "-" for stdin (overrides config)`)
	pf.StringVar(&catalogFormat, "catalog-format", "", "catalog document format: json or yaml (default: from extension)")
	pf.StringVar(&catalogSource, "source", "", "catalog source: file or postgres (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&logPretty, "log-pretty", false, "human-readable log output")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
