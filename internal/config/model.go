// Package config provides discovery, parsing and target resolution for
// shipit config files.
package config

// DefaultFileName is the config file name searched for when no override
// is given.
const DefaultFileName = ".shipit"

// Document is the parsed form of a config file: a flat header of global
// settings followed by the target sections in file order.
type Document struct {
	Header   map[string]string
	Sections []Section
	Settings Settings
	Path     string
}

// Section is one `[name]` or `[name:local]` block with its verbatim
// script body.
type Section struct {
	Name  string
	Local bool
	Body  string
}

// Settings holds the typed header keys. Host and Path are required; the
// rest tune the SSH connection.
type Settings struct {
	Host     string `validate:"required"`
	Path     string `validate:"required"`
	User     string `validate:"omitempty"`
	Port     int    `validate:"omitempty,min=1,max=65535"`
	Identity string `validate:"omitempty"`
}

// ResolvedTarget is the pair of scripts a target name maps to. Either
// script may be empty; both empty means the target was never declared.
type ResolvedTarget struct {
	Name         string
	LocalScript  string
	RemoteScript string
	hasLocal     bool
	hasRemote    bool
}

// HasLocal reports whether the target declares a local phase.
func (t *ResolvedTarget) HasLocal() bool {
	return t.hasLocal
}

// HasRemote reports whether the target declares a remote phase.
func (t *ResolvedTarget) HasRemote() bool {
	return t.hasRemote
}

// Exists reports whether the target was declared at all.
func (t *ResolvedTarget) Exists() bool {
	return t.hasLocal || t.hasRemote
}
