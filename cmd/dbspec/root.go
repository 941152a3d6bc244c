package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/koustreak/dbspec/internal/config"
	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/engines"
	"github.com/koustreak/dbspec/internal/logger"
)

// app is what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg      *config.Config
	log      *logger.Logger
	registry *engine.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dbspec",
		Short: "Explain database driver errors and render column types",
		Long: `dbspec turns raw MySQL and Amazon Redshift driver errors into structured
errors with remediation hints, and renders column types canonically.

Examples:
  dbspec extract --engine mysql "Access denied for user 'bob'@'10.0.0.1'"
  dbspec render --engine redshift "nvarchar(128)"
  dbspec probe --engine redshift --dsn postgres://awsuser@cluster:5439/dev
  dbspec serve --config dbspec.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newEnginesCmd(a),
		newExtractCmd(a),
		newRenderCmd(a),
		newProbeCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	cfg.Log.Output = stderr

	registry, err := engines.Default().Only(cfg.Engines)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(&cfg.Log)
	a.registry = registry
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
