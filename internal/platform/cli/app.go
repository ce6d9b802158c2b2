// Package cli wires the config, engine and transport layers together
// behind the operations the command line exposes.
package cli

import (
	"fmt"
	"os"

	"github.com/shipit-dev/shipit/internal/config"
	"github.com/shipit-dev/shipit/internal/core/deploy"
	"github.com/shipit-dev/shipit/internal/infrastructure/env"
	"github.com/shipit-dev/shipit/internal/infrastructure/local"
	"github.com/shipit-dev/shipit/internal/infrastructure/ssh"
)

// ConfigParser defines the interface for parsing a located config file.
type ConfigParser interface {
	Parse(path string) (*config.Document, error)
}

// EnvLoader defines the interface for loading environment files.
type EnvLoader interface {
	Load(path, vaultPassword string) error
}

// LocateFunc searches upward from startDir for fileName.
type LocateFunc func(startDir, fileName string) (string, error)

// Options carries the flag values of one invocation.
type Options struct {
	ConfigName    string
	HostOverride  string
	Verbose       bool
	EnvPaths      []string
	VaultPassword string
}

// App holds the wired dependencies for one process.
type App struct {
	parser    ConfigParser
	envLoader EnvLoader
	sessions  deploy.SessionFactory
	runner    deploy.LocalRunner
	presenter deploy.Presenter
	locate    LocateFunc
}

// NewApp creates an App with the default implementations: SSH transport,
// local shell runner, dotenv loader and colored presenter.
func NewApp() *App {
	return &App{
		parser:    config.NewParser(),
		envLoader: env.NewLoader(),
		sessions:  ssh.NewFactory(),
		runner:    local.NewRunner(),
		presenter: NewPresenter(),
		locate:    config.Locate,
	}
}

// NewAppWithDeps creates an App with custom dependencies.
func NewAppWithDeps(parser ConfigParser, envLoader EnvLoader, sessions deploy.SessionFactory,
	runner deploy.LocalRunner, presenter deploy.Presenter, locate LocateFunc) *App {
	return &App{
		parser:    parser,
		envLoader: envLoader,
		sessions:  sessions,
		runner:    runner,
		presenter: presenter,
		locate:    locate,
	}
}

// Deploy runs the named target's local and remote phases.
func (a *App) Deploy(opts *Options, target string) error {
	engine, ctx, err := a.load(opts)
	if err != nil {
		return err
	}
	return engine.Deploy(ctx, target)
}

// ListTargets prints the targets declared in the config file.
func (a *App) ListTargets(opts *Options) error {
	engine, _, err := a.load(opts)
	if err != nil {
		return err
	}
	engine.ListTargets()
	return nil
}

// Console opens an interactive shell on the configured host.
func (a *App) Console(opts *Options) error {
	engine, ctx, err := a.load(opts)
	if err != nil {
		return err
	}
	return engine.OpenConsole(ctx)
}

// Exec runs a single command line on the configured host.
func (a *App) Exec(opts *Options, cmdline string) error {
	engine, ctx, err := a.load(opts)
	if err != nil {
		return err
	}
	return engine.Exec(ctx, cmdline)
}

// Copy transfers a local file into the configured remote path.
func (a *App) Copy(opts *Options, localFile string) error {
	engine, ctx, err := a.load(opts)
	if err != nil {
		return err
	}
	return engine.Copy(ctx, localFile)
}

// load runs the shared preamble of every operation: env files, config
// discovery, parsing, engine and context construction.
func (a *App) load(opts *Options) (*deploy.Engine, *deploy.Context, error) {
	for _, path := range opts.EnvPaths {
		if err := a.envLoader.Load(path, opts.VaultPassword); err != nil {
			return nil, nil, fmt.Errorf("failed to load environment file %s: %w", path, err)
		}
	}

	fileName := opts.ConfigName
	if fileName == "" {
		fileName = config.DefaultFileName
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	configPath, err := a.locate(workDir, fileName)
	if err != nil {
		return nil, nil, err
	}

	doc, err := a.parser.Parse(configPath)
	if err != nil {
		return nil, nil, err
	}

	engine := deploy.NewEngine(doc, a.sessions,
		deploy.WithLocalRunner(a.runner),
		deploy.WithPresenter(a.presenter),
	)
	ctx := deploy.NewContext(doc.Settings, opts.HostOverride, opts.Verbose)

	return engine, ctx, nil
}
