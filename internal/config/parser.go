package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	sectionPattern = regexp.MustCompile(`^\[([^:\]]+)(:local)?\]$`)
	headerPattern  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.-]*)\s*[:=]\s*(.*)$`)
)

// Parser parses config files into Documents.
type Parser struct {
	validator *validator.Validate
}

// NewParser creates a parser with a fresh validator instance.
func NewParser() *Parser {
	return &Parser{validator: validator.New()}
}

// Parse reads and parses the config file at path. The first
// blank-line-delimited block is the key/value header; every following
// block is a `[name]` or `[name:local]` section whose remaining lines
// form the verbatim script body. A section runs until the next section
// header, so interior blank lines stay part of the body; trailing blank
// lines are trimmed. Any body line shaped like a section header starts a
// new section, so shell tests such as `[ -d /tmp ]` must be spelled with
// the `test` builtin inside script bodies.
func (p *Parser) Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc := &Document{
		Header: make(map[string]string),
		Path:   path,
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	rest, err := p.parseHeader(doc, lines)
	if err != nil {
		return nil, err
	}

	if err := p.parseSections(doc, lines, rest); err != nil {
		return nil, err
	}

	if err := p.buildSettings(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// parseHeader consumes the header block and returns the index of the
// first unconsumed line.
func (p *Parser) parseHeader(doc *Document, lines []string) (int, error) {
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if len(doc.Header) > 0 {
				i++
				break
			}
			continue // leading blank lines
		}

		// A config may omit the header entirely; the missing-key check
		// in buildSettings reports that case.
		if strings.HasPrefix(trimmed, "[") {
			break
		}

		m := headerPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return 0, &MalformedHeaderError{Line: i + 1, Text: line}
		}
		doc.Header[m[1]] = strings.TrimSpace(m[2])
	}
	return i, nil
}

// parseSections consumes the section blocks starting at lines[start].
func (p *Parser) parseSections(doc *Document, lines []string, start int) error {
	seen := make(map[string]bool)
	var current *Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
			body = body[:len(body)-1]
		}
		current.Body = strings.Join(body, "\n")
		doc.Sections = append(doc.Sections, *current)
		current = nil
		body = nil
	}

	for i := start; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			m := sectionPattern.FindStringSubmatch(trimmed)
			if m == nil {
				return &MalformedSectionError{Line: i + 1, Text: line}
			}
			flush()

			section := Section{Name: m[1], Local: m[2] == ":local"}
			key := sectionLabel(section.Name, section.Local)
			if seen[key] {
				return &DuplicateSectionError{Name: section.Name, Local: section.Local}
			}
			seen[key] = true
			current = &section
			continue
		}

		if current != nil {
			body = append(body, line)
			continue
		}

		if trimmed != "" {
			return &MalformedSectionError{Line: i + 1, Text: line}
		}
	}
	flush()

	return nil
}

// buildSettings extracts the typed settings from the header map and
// validates them.
func (p *Parser) buildSettings(doc *Document) error {
	settings := Settings{
		Host:     doc.Header["host"],
		Path:     doc.Header["path"],
		User:     doc.Header["user"],
		Identity: doc.Header["identity"],
	}

	if raw, ok := doc.Header["port"]; ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid port %q in config header: %w", raw, err)
		}
		settings.Port = port
	}

	if err := p.validator.Struct(settings); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range errs {
				if fieldErr.Tag() == "required" {
					return &IncompleteError{MissingKey: strings.ToLower(fieldErr.Field())}
				}
			}
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	doc.Settings = settings
	return nil
}
