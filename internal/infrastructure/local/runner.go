// Package local executes the local phase of a target in the calling
// environment.
package local

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Runner executes scripts with the local shell. The script runs under
// fail-fast semantics: the first failing statement stops the rest of the
// script and is reported as an error return, not a process abort.
type Runner struct {
	shell  string
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption defines functional options for Runner.
type RunnerOption func(*Runner)

// WithShell sets the shell binary used to run scripts.
func WithShell(shell string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithOutput redirects the script's stdout and stderr streams.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a runner using /bin/sh and the process's standard
// streams.
func NewRunner(opts ...RunnerOption) *Runner {
	runner := &Runner{
		shell:  "sh",
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Run executes script, streaming its output in real time.
func (r *Runner) Run(script string) error {
	cmd := exec.Command(r.shell, "-c", "set -e\n"+script)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start local shell: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		copyLines(stdout, r.stdout)
	}()
	go func() {
		defer wg.Done()
		copyLines(stderr, r.stderr)
	}()

	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("local script exited with error: %w", err)
	}

	return nil
}

func copyLines(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
}
