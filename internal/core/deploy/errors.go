// Package deploy provides the core orchestration for running a target's
// local and remote phases.
package deploy

import "fmt"

// TargetNotFoundError indicates the requested target has no section in
// the config file.
type TargetNotFoundError struct {
	Name string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target '%s' not found", e.Name)
}

// LocalScriptError indicates the local phase of a target failed. The
// remote phase is never attempted after this.
type LocalScriptError struct {
	Target string
	Cause  error
}

func (e *LocalScriptError) Error() string {
	return fmt.Sprintf("local script for target '%s' failed: %v", e.Target, e.Cause)
}

func (e *LocalScriptError) Unwrap() error {
	return e.Cause
}

// RemoteScriptError indicates the remote phase of a target failed. A
// missing remote directory also surfaces as this error, with the guard
// script's message in the session output.
type RemoteScriptError struct {
	Target string
	Cause  error
}

func (e *RemoteScriptError) Error() string {
	return fmt.Sprintf("remote script for target '%s' failed: %v", e.Target, e.Cause)
}

func (e *RemoteScriptError) Unwrap() error {
	return e.Cause
}

// RemoteCommandError indicates a one-off command run via exec failed on
// the remote host.
type RemoteCommandError struct {
	Cmd   string
	Cause error
}

func (e *RemoteCommandError) Error() string {
	return fmt.Sprintf("remote command '%s' failed: %v", e.Cmd, e.Cause)
}

func (e *RemoteCommandError) Unwrap() error {
	return e.Cause
}

// ConnectionError indicates the SSH connection to the host could not be
// established.
type ConnectionError struct {
	Host  string
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Host, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// FileNotFoundError indicates the local file given to copy does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("local file '%s' not found", e.Path)
}

// CopyError indicates a transfer over the file-copy channel failed.
type CopyError struct {
	Source      string
	Destination string
	Cause       error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying '%s' to '%s' failed: %v", e.Source, e.Destination, e.Cause)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}
