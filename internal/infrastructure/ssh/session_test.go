package ssh

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shipit-dev/shipit/internal/core/deploy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// fakeHandle implements SessionHandle with function fields.
type fakeHandle struct {
	startedCmd   string
	startErr     error
	waitErr      error
	stdout       string
	stderr       string
	ptyErr       error
	ptyRequested bool
	closed       bool
}

func (f *fakeHandle) Start(cmd string) error {
	f.startedCmd = cmd
	return f.startErr
}

func (f *fakeHandle) Wait() error {
	return f.waitErr
}

func (f *fakeHandle) StdoutPipe() (io.Reader, error) {
	return strings.NewReader(f.stdout), nil
}

func (f *fakeHandle) StderrPipe() (io.Reader, error) {
	return strings.NewReader(f.stderr), nil
}

func (f *fakeHandle) RequestPty(termType string, h, w int, modes ssh.TerminalModes) error {
	f.ptyRequested = true
	return f.ptyErr
}

func (f *fakeHandle) SetStdio(in io.Reader, out, errOut io.Writer) {}

func (f *fakeHandle) Close() error {
	f.closed = true
	return nil
}

// fakeTransport implements Transport over a fakeHandle.
type fakeTransport struct {
	handle     *fakeHandle
	sessionErr error
	forwarded  bool
	closed     bool
}

func (f *fakeTransport) NewSession() (SessionHandle, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.handle, nil
}

func (f *fakeTransport) ForwardAgent(handle SessionHandle) error {
	f.forwarded = true
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func TestGuardScript(t *testing.T) {
	script := GuardScript("/srv/app", "git pull\nsystemctl restart app")

	lines := strings.Split(script, "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	assert.Equal(t, "set -e", lines[0])
	assert.Contains(t, script, "if [ ! -d '/srv/app' ]; then")
	assert.Contains(t, script, "exit 1")
	assert.Contains(t, script, "cd '/srv/app'")
	assert.True(t, strings.HasSuffix(script, "git pull\nsystemctl restart app"))

	// The guard must check and enter the directory before the body runs.
	cdIndex := strings.Index(script, "cd '/srv/app'")
	bodyIndex := strings.Index(script, "git pull")
	checkIndex := strings.Index(script, "if [ ! -d")
	assert.Less(t, checkIndex, cdIndex)
	assert.Less(t, cdIndex, bodyIndex)
}

func TestGuardScriptQuotesPath(t *testing.T) {
	script := GuardScript("/srv/it's here", "echo hi")
	assert.Contains(t, script, `'/srv/it'\''s here'`)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'/srv/app'", shellQuote("/srv/app"))
	assert.Equal(t, `'a'\''b'`, shellQuote("a'b"))
	assert.Equal(t, "''", shellQuote(""))
}

func TestRemoteSessionRun(t *testing.T) {
	handle := &fakeHandle{stdout: "pulled\n"}
	transport := &fakeTransport{handle: handle}

	session := &RemoteSession{
		ctx:       &deploy.Context{Host: "example.com", Path: "/srv/app"},
		transport: transport,
	}

	require.NoError(t, session.Run("git pull"))

	assert.True(t, transport.forwarded)
	assert.True(t, handle.closed)
	assert.Equal(t, GuardScript("/srv/app", "git pull"), handle.startedCmd)
}

func TestRemoteSessionRunFailure(t *testing.T) {
	handle := &fakeHandle{waitErr: errors.New("exit status 2")}
	transport := &fakeTransport{handle: handle}

	session := &RemoteSession{
		ctx:       &deploy.Context{Host: "example.com", Path: "/srv/app"},
		transport: transport,
	}

	err := session.Run("false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 2")
}

func TestRemoteSessionRunSessionError(t *testing.T) {
	transport := &fakeTransport{sessionErr: errors.New("channel open failed")}

	session := &RemoteSession{
		ctx:       &deploy.Context{Host: "example.com", Path: "/srv/app"},
		transport: transport,
	}

	assert.Error(t, session.Run("true"))
}

func TestRemoteSessionShellRootedAtPath(t *testing.T) {
	handle := &fakeHandle{}
	transport := &fakeTransport{handle: handle}

	session := &RemoteSession{
		ctx:       &deploy.Context{Host: "example.com", Path: "/srv/app"},
		transport: transport,
	}

	require.NoError(t, session.Shell())

	// The console must enter the configured path before handing the
	// user a login shell.
	assert.Equal(t, GuardScript("/srv/app", loginShellCommand), handle.startedCmd)
	assert.Contains(t, handle.startedCmd, "cd '/srv/app'")
	assert.Contains(t, handle.startedCmd, `"${SHELL:-sh}" -l`)
	assert.True(t, transport.forwarded)
	assert.True(t, handle.closed)
}

func TestRemoteSessionShellPtyError(t *testing.T) {
	handle := &fakeHandle{ptyErr: errors.New("pty refused")}
	transport := &fakeTransport{handle: handle}

	session := &RemoteSession{
		ctx:       &deploy.Context{Host: "example.com", Path: "/srv/app"},
		transport: transport,
	}

	err := session.Shell()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to request PTY")
	assert.Empty(t, handle.startedCmd)
}

func TestRemoteSessionClose(t *testing.T) {
	transport := &fakeTransport{handle: &fakeHandle{}}
	session := &RemoteSession{
		ctx:       &deploy.Context{},
		transport: transport,
	}

	session.Close()
	assert.True(t, transport.closed)
}

func TestRunShellCommandStreamsOutput(t *testing.T) {
	handle := &fakeHandle{stdout: "line one\nline two\n", stderr: "warning\n"}

	var stdout, stderr bytes.Buffer
	require.NoError(t, runShellCommand(handle, "echo", &stdout, &stderr))

	assert.Equal(t, "line one\nline two\n", stdout.String())
	assert.Equal(t, "warning\n", stderr.String())
}

func TestRunShellCommandStartError(t *testing.T) {
	handle := &fakeHandle{startErr: errors.New("rejected")}

	var out bytes.Buffer
	err := runShellCommand(handle, "echo", &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}
