package config

import "fmt"

// NotFoundError indicates that no config file was found between the
// start directory and the filesystem root.
type NotFoundError struct {
	FileName string
	StartDir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found in %s or any parent directory", e.FileName, e.StartDir)
}

// IncompleteError indicates that a required header key is missing or empty.
type IncompleteError struct {
	MissingKey string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete config: missing required key '%s'", e.MissingKey)
}

// MalformedHeaderError indicates a header line that is not a key/value
// assignment.
type MalformedHeaderError struct {
	Line int
	Text string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header at line %d: %q", e.Line, e.Text)
}

// MalformedSectionError indicates a block that does not begin with a
// well-formed section header.
type MalformedSectionError struct {
	Line int
	Text string
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("malformed section at line %d: %q", e.Line, e.Text)
}

// DuplicateSectionError indicates the same target variant declared twice.
type DuplicateSectionError struct {
	Name  string
	Local bool
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section [%s]", sectionLabel(e.Name, e.Local))
}

func sectionLabel(name string, local bool) string {
	if local {
		return name + ":local"
	}
	return name
}
