package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/probe"
	"github.com/koustreak/dbspec/internal/server"
	"github.com/koustreak/dbspec/internal/sqltype"
)

func newEnginesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the enabled engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tENGINE")
			for _, s := range a.registry.Specs() {
				fmt.Fprintf(tw, "%s\t%s\n", s.Name(), s.EngineName())
			}
			return tw.Flush()
		},
	}
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		engineName string
		params     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "extract MESSAGE",
		Short: "Classify a raw driver error message",
		Long: `Runs MESSAGE through the engine's error catalog and prints the structured
errors as JSON. An unrecognised message prints an empty list.

The engine may be given as a URL scheme such as mysql+mysqldb or
postgresql+redshift_connector. A backend no engine supports falls back to
generic rules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := a.resolve(engineName)
			found := spec.ExtractErrors(args[0], engine.Params(params))
			a.log.Diagnosis(spec.EngineName(), args[0], found)
			if found == nil {
				found = []errs.Error{}
			}
			return printJSON(cmd.OutOrStdout(), found)
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "", "engine identifier (see 'dbspec engines')")
	cmd.Flags().StringToStringVar(&params, "param", nil, "connection context, e.g. --param hostname=db,port=3306")
	_ = cmd.MarkFlagRequired("engine")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var engineName, dialectName string

	cmd := &cobra.Command{
		Use:   "render TYPE",
		Short: "Render a column type canonically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := a.resolve(engineName)
			d, err := sqltype.ParseLenient(args[0])
			if err != nil {
				return err
			}
			dialect := spec.Dialect()
			if dialectName != "" {
				var ok bool
				if dialect, ok = sqltype.DialectByName(dialectName); !ok {
					return fmt.Errorf("unknown dialect %q", dialectName)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), spec.ColumnTypeToString(d, dialect))
			return err
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "", "engine identifier")
	cmd.Flags().StringVar(&dialectName, "dialect", "", "dialect to compile with (default: the engine's own)")
	_ = cmd.MarkFlagRequired("engine")
	return cmd
}

func newProbeCmd(a *app) *cobra.Command {
	var engineName, dsn string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Test a connection and explain why it failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := probe.New(&probe.Config{ConnectTimeout: a.cfg.Probe.ConnectTimeout}, a.log)
			res, err := p.RunNamed(cmd.Context(), a.registry, engineName, dsn)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.OK {
				first := &res.Errors[0]
				return fmt.Errorf("probe failed [%s]: %s", errs.TypeOf(first), first.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "", "engine identifier")
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name to connect to")
	_ = cmd.MarkFlagRequired("engine")
	_ = cmd.MarkFlagRequired("dsn")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			p := probe.New(&probe.Config{ConnectTimeout: a.cfg.Probe.ConnectTimeout}, a.log)
			return server.New(cfg, a.registry, p, a.log).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// resolve picks the adapter for name, warning when only the generic fallback
// supports it.
func (a *app) resolve(name string) engine.Spec {
	spec := a.registry.Resolve(name)
	if spec.Name() == engine.BaseName && name != string(engine.BaseName) {
		a.log.With().Str("engine", name).Logger().Warn("no engine supports this backend, using generic rules")
	}
	return spec
}
