package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging/console"
)

var moduleBuilder = bootstrap.BuildModule

// cli carries the global flags shared by every subcommand.
type cli struct {
	opts   bootstrap.Options
	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	app := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "blog",
		Short:         "Serve, search and manage markdown articles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&app.opts.ConfigPath, "config", "", "path to a YAML config file")
	flags.StringVar(&app.opts.EnvFile, "env-file", "", "path to a .env file (defaults to ./.env when present)")
	flags.StringVar(&app.opts.ContentDir, "content-dir", "", "directory holding the markdown articles")
	flags.StringVar(&app.opts.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.opts.LogFormat, "log-format", "", "log format (json, console, pretty); selects the go-logger provider")

	root.AddCommand(
		app.serveCommand(),
		app.mcpCommand(),
		app.searchCommand(),
		app.showCommand(),
		app.categoriesCommand(),
		app.authorsCommand(),
		app.syncCommand(),
		app.checkCommand(),
		app.newCommand(),
		app.previewCommand(),
	)
	return root
}

func (app *cli) config() (blog.Config, error) {
	return bootstrap.LoadConfig(app.opts)
}

// module loads the config, lets mutate adjust it and builds the runtime.
func (app *cli) module(mutate func(*blog.Config), opts ...di.Option) (*blog.Module, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return moduleBuilder(cfg, opts...)
}

// toolModule builds the runtime for one-shot commands. Watching is off and
// logs go to stderr at warn level unless a more verbose level was requested,
// so stdout holds only command output.
func (app *cli) toolModule(mutate func(*blog.Config), opts ...di.Option) (*blog.Module, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Cache.Watch = false
	if strings.TrimSpace(app.opts.LogLevel) == "" {
		cfg.Logging.Level = "warn"
	}

	level := console.ParseLevel(cfg.Logging.Level)
	provider := console.NewProvider(console.Options{Writer: app.stderr, MinLevel: &level, Focus: cfg.Logging.Focus})
	return moduleBuilder(cfg, append([]di.Option{di.WithLoggerProvider(provider)}, opts...)...)
}
