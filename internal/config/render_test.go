package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionString(t *testing.T) {
	section := Section{Name: "deploy", Local: false, Body: "git pull\nsystemctl restart app"}
	assert.Equal(t, "[deploy]\ngit pull\nsystemctl restart app", section.String())

	local := Section{Name: "deploy", Local: true, Body: "npm run build"}
	assert.Equal(t, "[deploy:local]\nnpm run build", local.String())
}

func TestRenderRoundTrip(t *testing.T) {
	content := `host = example.com
path = /srv/app

[deploy:local]
npm run build

[deploy]
git pull

echo done
`
	path := filepath.Join(t.TempDir(), ".shipit")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	parser := NewParser()
	doc, err := parser.Parse(path)
	require.NoError(t, err)

	rendered := Render(doc)
	reparsedPath := filepath.Join(t.TempDir(), ".shipit")
	require.NoError(t, os.WriteFile(reparsedPath, []byte(rendered), 0644))

	reparsed, err := parser.Parse(reparsedPath)
	require.NoError(t, err)

	assert.Equal(t, doc.Header, reparsed.Header)
	assert.Equal(t, doc.Sections, reparsed.Sections)
}
