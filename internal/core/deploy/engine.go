package deploy

import (
	"fmt"
	"os"
	"path"

	"github.com/shipit-dev/shipit/internal/config"
)

// Engine orchestrates the operations on a loaded config document. Phases
// run strictly in sequence: the local phase must succeed before the
// remote phase is attempted.
type Engine struct {
	doc       *config.Document
	sessions  SessionFactory
	local     LocalRunner
	presenter Presenter
}

// EngineOption defines functional options for Engine.
type EngineOption func(*Engine)

// WithLocalRunner sets the runner used for local phases.
func WithLocalRunner(runner LocalRunner) EngineOption {
	return func(e *Engine) {
		e.local = runner
	}
}

// WithPresenter sets the presenter that receives phase transitions.
func WithPresenter(presenter Presenter) EngineOption {
	return func(e *Engine) {
		e.presenter = presenter
	}
}

// NewEngine creates an engine for doc using the given session factory.
func NewEngine(doc *config.Document, sessions SessionFactory, opts ...EngineOption) *Engine {
	engine := &Engine{
		doc:       doc,
		sessions:  sessions,
		local:     nil,
		presenter: noopPresenter{},
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Deploy runs the named target: local phase first, then remote. A local
// failure aborts the deploy without touching the remote host.
func (e *Engine) Deploy(ctx *Context, name string) error {
	target := config.Resolve(e.doc, name)
	if !target.Exists() {
		return &TargetNotFoundError{Name: name}
	}

	if target.HasLocal() {
		e.presenter.Phase(name, "local")
		if err := e.runLocal(target.LocalScript); err != nil {
			return &LocalScriptError{Target: name, Cause: err}
		}
	}

	if target.HasRemote() {
		e.presenter.Phase(name, "remote")
		if err := e.runRemote(ctx, target.RemoteScript); err != nil {
			return &RemoteScriptError{Target: name, Cause: err}
		}
	}

	e.presenter.Success(name)
	return nil
}

// ListTargets reports the unique target names in config order.
func (e *Engine) ListTargets() []string {
	names := config.ListTargets(e.doc)
	e.presenter.TargetList(names)
	return names
}

// OpenConsole opens an interactive login shell on the configured host.
func (e *Engine) OpenConsole(ctx *Context) error {
	session, err := e.sessions.NewSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Shell()
}

// Exec runs a single command line on the remote host, inside the same
// guard as a deploy's remote phase.
func (e *Engine) Exec(ctx *Context, cmdline string) error {
	if err := e.runRemote(ctx, cmdline); err != nil {
		return &RemoteCommandError{Cmd: cmdline, Cause: err}
	}
	return nil
}

// Copy transfers localFile to `<path>/<localFile>` on the host. The
// local file is checked before any connection is made.
func (e *Engine) Copy(ctx *Context, localFile string) error {
	if _, err := os.Stat(localFile); err != nil {
		return &FileNotFoundError{Path: localFile}
	}

	session, err := e.sessions.NewSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	remotePath := path.Join(ctx.Path, localFile)
	if err := session.Copy(localFile, remotePath); err != nil {
		return &CopyError{Source: localFile, Destination: remotePath, Cause: err}
	}

	return nil
}

func (e *Engine) runLocal(script string) error {
	if e.local == nil {
		return fmt.Errorf("no local runner configured")
	}
	return e.local.Run(script)
}

func (e *Engine) runRemote(ctx *Context, script string) error {
	session, err := e.sessions.NewSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Run(script)
}

type noopPresenter struct{}

func (noopPresenter) Phase(target, phase string) {}
func (noopPresenter) Success(target string)      {}
func (noopPresenter) TargetList(names []string)  {}
