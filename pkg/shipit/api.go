// Package shipit provides a public API for the deployment engine. It
// exposes the config types and the engine operations so other programs
// can embed shipit's deployment behavior without going through the CLI.
package shipit

import (
	"github.com/shipit-dev/shipit/internal/config"
	"github.com/shipit-dev/shipit/internal/core/deploy"
	"github.com/shipit-dev/shipit/internal/infrastructure/local"
	"github.com/shipit-dev/shipit/internal/infrastructure/ssh"
	"github.com/shipit-dev/shipit/internal/platform/cli"
)

// Document represents a parsed config file.
type Document = config.Document

// Section represents one target section of a config file.
type Section = config.Section

// ResolvedTarget represents the scripts a target name maps to.
type ResolvedTarget = config.ResolvedTarget

// Context carries the connection settings for one invocation.
type Context = deploy.Context

// Engine orchestrates target deployment.
type Engine = deploy.Engine

// DefaultFileName is the config file name searched for by default.
const DefaultFileName = config.DefaultFileName

// Locate searches upward from startDir for the named config file.
func Locate(startDir, fileName string) (string, error) {
	return config.Locate(startDir, fileName)
}

// LoadConfig parses the config file at path.
func LoadConfig(path string) (*Document, error) {
	return config.NewParser().Parse(path)
}

// ListTargets returns the unique target names declared in doc.
func ListTargets(doc *Document) []string {
	return config.ListTargets(doc)
}

// NewEngine creates an engine for doc with the SSH transport and the
// local shell runner.
func NewEngine(doc *Document) *Engine {
	return deploy.NewEngine(doc, ssh.NewFactory(),
		deploy.WithLocalRunner(local.NewRunner()),
	)
}

// Deploy resolves the config from the working directory and deploys the
// named target with default options.
func Deploy(target string) error {
	return cli.NewApp().Deploy(&cli.Options{}, target)
}
