package config

import (
	"sort"
	"strings"
)

// String renders the section back to its config-file form: the bracketed
// header line followed by the verbatim body.
func (s Section) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(sectionLabel(s.Name, s.Local))
	b.WriteString("]\n")
	b.WriteString(s.Body)
	return b.String()
}

// Render regenerates the textual form of the document: the header keys
// in sorted order, then each section separated by a blank line.
// Re-parsing the output yields the same header values and section bodies.
func Render(doc *Document) string {
	var b strings.Builder

	keys := make([]string, 0, len(doc.Header))
	for key := range doc.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(doc.Header[key])
		b.WriteString("\n")
	}

	for _, section := range doc.Sections {
		b.WriteString("\n")
		b.WriteString(section.String())
		b.WriteString("\n")
	}

	return b.String()
}
