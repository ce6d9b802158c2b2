package ssh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/sftp"
	"github.com/shipit-dev/shipit/internal/core/deploy"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/term"
)

// SessionHandle is one exec or shell channel on an established
// connection.
type SessionHandle interface {
	Start(cmd string) error
	Wait() error
	StdoutPipe() (io.Reader, error)
	StderrPipe() (io.Reader, error)
	RequestPty(termType string, h, w int, modes ssh.TerminalModes) error
	SetStdio(in io.Reader, out, errOut io.Writer)
	Close() error
}

// Transport abstracts the established SSH connection.
type Transport interface {
	NewSession() (SessionHandle, error)
	ForwardAgent(handle SessionHandle) error
	Close() error
}

// TransportAdapter adapts ssh.Client (plus the local agent, when
// present) to the Transport interface.
type TransportAdapter struct {
	client     *ssh.Client
	localAgent agent.ExtendedAgent
}

// NewTransportAdapter creates a Transport over an established ssh.Client.
func NewTransportAdapter(client *ssh.Client, localAgent agent.ExtendedAgent) Transport {
	return &TransportAdapter{client: client, localAgent: localAgent}
}

// NewSession implements Transport by opening a channel on the client.
func (a *TransportAdapter) NewSession() (SessionHandle, error) {
	session, err := a.client.NewSession()
	if err != nil {
		return nil, err
	}
	return &sessionAdapter{Session: session}, nil
}

// ForwardAgent forwards the local authentication agent into the session.
func (a *TransportAdapter) ForwardAgent(handle SessionHandle) error {
	if a.localAgent == nil {
		return nil
	}

	adapter, ok := handle.(*sessionAdapter)
	if !ok {
		return nil
	}

	if err := agent.ForwardToAgent(a.client, a.localAgent); err != nil {
		return err
	}
	return agent.RequestAgentForwarding(adapter.Session)
}

// Close implements Transport by closing the underlying connection.
func (a *TransportAdapter) Close() error {
	return a.client.Close()
}

type sessionAdapter struct {
	*ssh.Session
}

func (s *sessionAdapter) StdoutPipe() (io.Reader, error) {
	return s.Session.StdoutPipe()
}

func (s *sessionAdapter) StderrPipe() (io.Reader, error) {
	return s.Session.StderrPipe()
}

func (s *sessionAdapter) SetStdio(in io.Reader, out, errOut io.Writer) {
	s.Session.Stdin = in
	s.Session.Stdout = out
	s.Session.Stderr = errOut
}

// RemoteSession implements deploy.Session on an established connection.
type RemoteSession struct {
	ctx       *deploy.Context
	transport Transport
	newSFTP   func() (SFTPClientInterface, error)
}

// Run executes script on the remote host wrapped in the guard preamble.
func (s *RemoteSession) Run(script string) error {
	handle, err := s.transport.NewSession()
	if err != nil {
		return fmt.Errorf("failed to open SSH session: %w", err)
	}
	defer handle.Close()

	if err := s.transport.ForwardAgent(handle); err != nil {
		debugf(s.ctx, "agent forwarding unavailable: %v", err)
	}

	return runShellCommand(handle, GuardScript(s.ctx.Path, script), os.Stdout, os.Stderr)
}

// Shell opens an interactive login shell with a PTY sized to the local
// terminal. The shell starts through the same guard preamble as Run, so
// the session is rooted in the configured remote path.
func (s *RemoteSession) Shell() error {
	handle, err := s.transport.NewSession()
	if err != nil {
		return fmt.Errorf("failed to open SSH session: %w", err)
	}
	defer handle.Close()

	if err := s.transport.ForwardAgent(handle); err != nil {
		debugf(s.ctx, "agent forwarding unavailable: %v", err)
	}

	width, height := 80, 24
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to set raw terminal mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()

		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}

	termType := os.Getenv("TERM")
	if termType == "" {
		termType = "xterm"
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := handle.RequestPty(termType, height, width, modes); err != nil {
		return fmt.Errorf("failed to request PTY: %w", err)
	}

	handle.SetStdio(os.Stdin, os.Stdout, os.Stderr)

	if err := handle.Start(GuardScript(s.ctx.Path, loginShellCommand)); err != nil {
		return fmt.Errorf("failed to start login shell: %w", err)
	}

	return handle.Wait()
}

// loginShellCommand replaces the guard shell with the user's login
// shell once the configured path has been checked and entered.
const loginShellCommand = `exec "${SHELL:-sh}" -l`

// Copy transfers localPath to remotePath over SFTP.
func (s *RemoteSession) Copy(localPath, remotePath string) error {
	client, err := s.newSFTP()
	if err != nil {
		return err
	}
	defer client.Close()

	return NewCopier(client).CopyFile(localPath, remotePath)
}

// Close releases the connection.
func (s *RemoteSession) Close() {
	_ = s.transport.Close()
}

// GuardScript wraps body in the remote guard preamble: fail-fast
// semantics, a directory-existence check with a colored error, then a
// change into the configured path before the body runs.
func GuardScript(remotePath, body string) string {
	quoted := shellQuote(remotePath)

	var b strings.Builder
	b.WriteString("set -e\n")
	fmt.Fprintf(&b, "if [ ! -d %s ]; then\n", quoted)
	fmt.Fprintf(&b, "  printf '\\033[0;31mremote path %%s does not exist\\033[0m\\n' %s >&2\n", quoted)
	b.WriteString("  exit 1\n")
	b.WriteString("fi\n")
	fmt.Fprintf(&b, "cd %s\n", quoted)
	b.WriteString(body)

	return b.String()
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// runShellCommand starts cmd on the handle and streams its output to the
// provided writers until it exits.
func runShellCommand(handle SessionHandle, cmd string, stdout, stderr io.Writer) error {
	stdoutPipe, err := handle.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	stderrPipe, err := handle.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := handle.Start(cmd); err != nil {
		return fmt.Errorf("failed to start remote script: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		pipeOutput(stdoutPipe, stdout)
		wg.Done()
	}()
	go func() {
		pipeOutput(stderrPipe, stderr)
		wg.Done()
	}()

	err = handle.Wait()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("remote script exited with error: %w", err)
	}

	return nil
}

// pipeOutput pipes output from a reader to a writer line by line.
func pipeOutput(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
}

func newSFTPClient(client *ssh.Client) (SFTPClientInterface, error) {
	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		return nil, err
	}
	return &SFTPAdapter{Client: sftpClient}, nil
}
