package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"path-explorer/internal/analyze"
	"path-explorer/internal/config"
	"path-explorer/internal/logger"
	"path-explorer/internal/navigate"
	"path-explorer/internal/resolve"
	"path-explorer/internal/shape"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "path-explorer",
		Short: "Complete property path expressions against typed sources",
		Long: `path-explorer lists the members reachable from a typed root at the end of a
dotted path expression. Types come from Go packages (--pkg) or from a YAML
type catalog (--catalog).

Examples:
  path-explorer explore example.com/shop/store.Order items.first.
  path-explorer explore --source order=store.Order --source user=store.User ord
  path-explorer serve /tmp/path-explorer.sock
  path-explorer parse "items.getFirst().name"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: ./"+config.DefaultFile+" when present)")
	flags.Bool("json-log", false, "Write logs as JSON")
	flags.CountP("verbose", "v", "Increase log verbosity (-v, -vv)")

	root.AddCommand(
		newExploreCmd(a),
		newServeCmd(a),
		newParseCmd(),
		newLocateCmd(a),
	)

	return root
}

// setup loads the configuration, lets flags override it and sets up the
// global logger.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if err := v.BindPFlag("log.json", flags.Lookup("json-log")); err != nil {
		return errors.Wrap(err, "failed to bind --json-log")
	}

	if err := v.BindPFlag("log.verbosity", flags.Lookup("verbose")); err != nil {
		return errors.Wrap(err, "failed to bind --verbose")
	}

	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.cfg = cfg

	return nil
}

// typeFlags selects where types are read from. Empty flags fall back to
// the [types] section of the configuration.
type typeFlags struct {
	packages []string
	catalog  string
}

func (f *typeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.packages, "pkg", nil, "Go package pattern to load types from (repeatable)")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "YAML type catalog file or pattern (types/**/*.yaml)")
}

// typeSet holds the loaded type sources. The Go packages are loaded once;
// the catalog can be reloaded.
type typeSet struct {
	packages *analyze.Provider
	pattern  string
	catalog  *shape.Catalog
}

func (a *app) loadTypes(f typeFlags) (*typeSet, error) {
	packages, pattern := f.packages, f.catalog
	if len(packages) == 0 {
		packages = a.cfg.Types.Packages
	}

	if pattern == "" {
		pattern = a.cfg.Types.Catalog
	}

	ts := &typeSet{pattern: pattern}

	if len(packages) > 0 {
		p, err := analyze.LoadDir(a.cfg.Types.Dir, packages, analyze.WithLogger(logger.Named("analyze")))
		if err != nil {
			return nil, err
		}

		ts.packages = p
	}

	if err := ts.reloadCatalog(); err != nil {
		return nil, err
	}

	return ts, nil
}

// reloadCatalog reads the catalog files again. On failure the previous
// catalog is kept.
func (ts *typeSet) reloadCatalog() error {
	if ts.pattern == "" {
		return nil
	}

	c, err := shape.LoadCatalogs(ts.pattern)
	if err != nil {
		return err
	}

	ts.catalog = c

	return nil
}

// chain returns the provider: Go packages first, then the catalog. With
// neither configured only built-in types resolve.
func (ts *typeSet) chain() shape.Chain {
	var chain shape.Chain

	if ts.packages != nil {
		chain = append(chain, ts.packages)
	}

	if ts.catalog != nil {
		chain = append(chain, ts.catalog)
	}

	if len(chain) == 0 {
		logger.Logger.Debugw("no types configured, only built-in types resolve")
		chain = append(chain, shape.NewCatalog())
	}

	return chain
}

func newResolver(provider shape.Provider) *resolve.Resolver {
	nav := navigate.New(provider, navigate.WithLogger(logger.Named("navigate")))
	return resolve.New(nav, provider).WithLogger(logger.Named("resolve"))
}
