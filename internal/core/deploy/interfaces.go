package deploy

// Session is a live connection to the configured host. Run and Copy may
// be called any number of times before Close.
type Session interface {
	// Run executes script on the remote host inside the guard preamble
	// (fail-fast, remote path checked and entered first).
	Run(script string) error
	// Shell opens an interactive login shell with a PTY.
	Shell() error
	// Copy transfers the local file to remotePath over the file-copy
	// channel.
	Copy(localPath, remotePath string) error
	// Close releases the connection.
	Close()
}

// SessionFactory opens sessions against the host described by ctx.
type SessionFactory interface {
	NewSession(ctx *Context) (Session, error)
}

// LocalRunner executes a script in the calling environment. A failing
// statement stops the rest of the script and surfaces as an error
// return, never as a process abort.
type LocalRunner interface {
	Run(script string) error
}

// Presenter receives phase transitions and outcomes. Implementations own
// all terminal formatting; the engine never inspects terminal state.
type Presenter interface {
	Phase(target, phase string)
	Success(target string)
	TargetList(names []string)
}
