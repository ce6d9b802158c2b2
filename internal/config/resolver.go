package config

// Resolve extracts the local and remote scripts declared for name. The
// returned target reports Exists() == false when neither variant was
// declared.
func Resolve(doc *Document, name string) *ResolvedTarget {
	target := &ResolvedTarget{Name: name}

	for _, section := range doc.Sections {
		if section.Name != name {
			continue
		}
		if section.Local {
			target.LocalScript = section.Body
			target.hasLocal = true
		} else {
			target.RemoteScript = section.Body
			target.hasRemote = true
		}
	}

	return target
}

// Exists reports whether name is declared as either variant.
func Exists(doc *Document, name string) bool {
	return Resolve(doc, name).Exists()
}

// ListTargets returns the unique base target names in first-seen order.
func ListTargets(doc *Document) []string {
	var names []string
	seen := make(map[string]bool)

	for _, section := range doc.Sections {
		if seen[section.Name] {
			continue
		}
		seen[section.Name] = true
		names = append(names, section.Name)
	}

	return names
}
