package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	phaseHeader = color.New(color.FgCyan, color.Bold).SprintfFunc()
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	targetLabel = color.New(color.Bold).SprintFunc()
)

// ColorPresenter prints phase transitions and outcomes with terminal
// colors. It implements deploy.Presenter.
type ColorPresenter struct {
	out io.Writer
}

// NewPresenter creates a presenter writing to the colorable stdout.
func NewPresenter() *ColorPresenter {
	return &ColorPresenter{out: color.Output}
}

// NewPresenterWithWriter creates a presenter writing to out.
func NewPresenterWithWriter(out io.Writer) *ColorPresenter {
	return &ColorPresenter{out: out}
}

// Phase announces that a phase of the target is about to run.
func (p *ColorPresenter) Phase(target, phase string) {
	fmt.Fprintln(p.out, phaseHeader("==> %s: %s phase", target, phase))
}

// Success reports that all phases of the target completed.
func (p *ColorPresenter) Success(target string) {
	fmt.Fprintf(p.out, "%s %s deployed\n", successMark("✔"), targetLabel(target))
}

// TargetList prints the available targets, one per line.
func (p *ColorPresenter) TargetList(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(p.out, "No targets defined")
		return
	}

	fmt.Fprintln(p.out, "Available targets:")
	for _, name := range names {
		fmt.Fprintf(p.out, "  %s\n", targetLabel(name))
	}
}
