package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mpyw/injectlogin/internal/config"
	"github.com/mpyw/injectlogin/internal/emit"
	"github.com/mpyw/injectlogin/internal/generator"
	"github.com/mpyw/injectlogin/internal/loader"
	"github.com/mpyw/injectlogin/internal/logger"
	"github.com/mpyw/injectlogin/internal/round"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "injectlogin [patterns...]",
		Short: "Generate the login target accessor",
		Long: `injectlogin finds the struct field marked with //bbgo:injectlogin and
generates an accessor type naming the struct that declares it.

The generated file is written to <output>/<namespace>/, by default
./injectlogin/zz_generated.bbgo_<type>_injectlogin.go.

Examples:
  injectlogin ./...               # Generate from every package
  injectlogin -o internal ./...   # Write to internal/injectlogin/
  injectlogin check ./...         # Fail if the generated file is stale`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	flags.StringP("output", "o", ".", "directory the generated package directory is created in")
	flags.Bool("tests", false, "include test packages")
	flags.Bool("json", false, "log as JSON")
	flags.CountP("verbose", "v", "increase verbosity (-v, -vv)")

	for key, name := range map[string]string{
		"output":        "output",
		"tests":         "tests",
		"log.json":      "json",
		"log.verbosity": "verbose",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newCheckCmd(a), newVersionCmd())

	return cmd
}

// setup loads the configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.configPath, ".")
	if err != nil {
		return err
	}

	if len(args) > 0 {
		cfg.Patterns = args
	}

	if err := cfg.Validate(); err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"check "+config.FileName+" and INJECTLOGIN_* environment variables")
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.cfg = cfg

	return nil
}

func (a *app) dirChannel() emit.DirChannel {
	return emit.DirChannel{Root: a.cfg.OutputDir()}
}

func (a *app) generate(ctx context.Context, ch emit.Channel) (*round.Result, error) {
	g := &generator.Generator{
		Convention: a.cfg.Convention(),
		Channel:    ch,
		Loader:     a.cfg.LoaderConfig(""),
		Logger:     logger.ComponentLogger("generator"),
	}

	return g.GeneratePatterns(ctx, a.cfg.Patterns...)
}

func (a *app) runGenerate(cmd *cobra.Command) error {
	res, err := a.generate(cmd.Context(), a.dirChannel())
	if err != nil {
		return err
	}

	if res == nil || res.State != round.Done {
		return nil
	}

	if res.File.Outcome != emit.Written {
		return nil
	}

	out := cmd.OutOrStdout()
	written := filepath.Join(a.cfg.OutputDir(), res.File.Name)

	// Outside a module the import path is unknown.
	pkg, err := loader.ImportPath(a.cfg.OutputDir())
	if err != nil {
		logger.ComponentLogger("generator").Debugw("import path unavailable", logger.FieldError, err)
		fmt.Fprintf(out, "wrote %s\n", written)
		return nil
	}

	fmt.Fprintf(out, "wrote %s (package %s)\n", written, pkg)

	return nil
}
