package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mguzdial3/IndigoPrison/pkg/buildsys"
	"github.com/mguzdial3/IndigoPrison/pkg/config"
)

var errBuildFailed = eris.New("build failed")

// app carries the process-wide dependencies of the commands so tests can swap them out.
type app struct {
	stdout io.Writer
	stderr io.Writer
	wd     string
	// setup is called with the freshly configured environment before anything runs
	setup func(*buildsys.Env)
}

type session struct {
	ctx    context.Context
	cfg    *config.Config
	env    *buildsys.Env
	logger zerolog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "indigo-build [target]",
		Short: "Build all the things.",
		Long: `Build all the things.
Does not do dependency checking, simply builds them all in order.
You can only build one step of the process by passing in something other than 'all'.`,
		Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs:     buildsys.TargetNames(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolP("dev", "d", false, "Build in development mode (default).")
	flags.BoolP("prod", "p", false, "Build in production mode.")
	rootCmd.MarkFlagsMutuallyExclusive("dev", "prod")

	pflags := rootCmd.PersistentFlags()
	pflags.StringP("config", "c", "", fmt.Sprintf("configuration file (default %s in the project root if present)", config.DefaultFile))
	pflags.Bool("enable-unity", false, "register the unity target and add it to 'all'")
	pflags.Bool("no-color", false, "disable colored output")
	pflags.String("log-level", "", "log level (debug, info, warn, error, fatal)")

	rootCmd.AddCommand(newTargetsCmd(a))
	rootCmd.AddCommand(newIdentityCmd(a))

	return rootCmd
}

// newSession loads the configuration, applies flag overrides and sets up logging and the
// build environment.
func (a *app) newSession(cmd *cobra.Command) (*session, error) {
	var cfg *config.Config
	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(config.DefaultPath(a.wd))
	}
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Log.Color = false
	}
	if unity, _ := cmd.Flags().GetBool("enable-unity"); unity {
		cfg.Unity.Enabled = true
	}

	if err = cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "Failed to parse config")
	}

	s := &session{cfg: cfg}
	s.logger = newLogger(a.stderr, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = buildsys.WithLogger(ctx, &s.logger)

	s.env, err = cfg.NewEnv(a.wd)
	if err != nil {
		return nil, err
	}

	s.env.Stdout = a.stdout
	s.env.Stderr = a.stderr
	s.env.Printer = buildsys.NewPrinter(a.stdout, cfg.Log.Color)
	if a.setup != nil {
		a.setup(s.env)
	}

	return s, nil
}

func newLogger(out io.Writer, cfg *config.Config) zerolog.Logger {
	verbose := cfg.Log.Verbose
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return buildsys.Render(err, verbose)
	}

	ctx := zerolog.New(NewConsoleWriter(out, cfg.Log.Color, verbose)).
		Level(cfg.LogLevel()).
		With().
		Timestamp()

	runID, err := nanoid.Generate(nanoid.DefaultAlphabet, 10)
	if err == nil {
		ctx = ctx.Str("run", runID)
	}

	return ctx.Logger()
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	err := a.build(cmd, args)
	if err != nil {
		a.reportFailure(err)
		return errBuildFailed
	}

	fmt.Fprintf(a.stdout, "Finished in %f seconds\n", time.Since(startTime).Seconds())
	return nil
}

func (a *app) build(cmd *cobra.Command, args []string) error {
	opts := buildsys.Options{
		Target: buildsys.TargetAll,
		Mode:   buildsys.ModeDevelopment,
	}

	if len(args) > 0 {
		target, err := buildsys.ParseTarget(args[0])
		if err != nil {
			return err
		}
		opts.Target = target
	}

	if prod, _ := cmd.Flags().GetBool("prod"); prod {
		opts.Mode = buildsys.ModeProduction
	}

	s, err := a.newSession(cmd)
	if err != nil {
		return err
	}

	s.env.Repo, err = buildsys.ProbeRepository(s.ctx, s.env)
	if err != nil {
		return err
	}

	registry := buildsys.NewRegistry(s.env.UnityEnabled)
	return registry.Build(s.ctx, s.env, opts)
}

func (a *app) reportFailure(err error) {
	fmt.Fprintln(a.stderr, buildsys.Render(err, true))
	fmt.Fprintln(a.stderr, "BUILD FAILED :(")
}

// run executes the command line args and returns the process exit code
func (a *app) run(args []string) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if eris.Is(err, errBuildFailed) {
		return 1
	}

	fmt.Fprintf(a.stderr, "Error: %s\n", err)
	fmt.Fprintf(a.stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	return 2
}

// Execute runs the command line tool and exits the process
func Execute() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to retrieve the current working directory: %s\n", err)
		os.Exit(1)
	}

	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		wd:     wd,
	}
	os.Exit(a.run(os.Args[1:]))
}
