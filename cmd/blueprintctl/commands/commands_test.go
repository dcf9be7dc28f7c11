package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `{
  "description": "Spring Sale",
  "canvasBackgroundColor": "#fafafa",
  "elements": [
    {"type": "text", "position": {"x": 100, "y": 100}, "size": {"width": 800, "height": 100}, "content": "Spring <Sale>", "style": {"fontSize": "64px"}},
    {"type": "shape", "position": {"x": 0, "y": 900}, "size": {"width": 1000, "height": 100}, "style": {"backgroundColor": "#ff0000"}}
  ]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	renderWidth, renderSelected, renderJSON = 1000, -1, false
	exportDir, templatesDump = ".", -1

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	path := writeFile(t, "sale.json", sampleLayout)

	out, err := run(t, "render", path, "--width", "500", "--selected", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "width: 500px")
	assert.Contains(t, out, "font-size: 32px")
	assert.Contains(t, out, "Spring &lt;Sale&gt;")
	assert.Contains(t, out, "2px solid hsl(var(--accent))")

	_, err = run(t, "render", path, "--selected", "5")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "good.json", sampleLayout)
	bad := writeFile(t, "bad.json", `{"description":"x","elements":[{"type":"text","size":{"width":0,"height":10}}]}`)

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	out, err = run(t, "validate", good, bad)
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL")
}

func TestExportCommand(t *testing.T) {
	path := writeFile(t, "sale.json", sampleLayout)
	dir := t.TempDir()

	out, err := run(t, "export", path, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "spring_sale.json")

	data, err := os.ReadFile(filepath.Join(dir, "spring_sale.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":`)
}

func TestTemplatesCommand(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Image with a Caption")

	out, err = run(t, "templates", "--dump", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"data-ai-hint": "illustration"`)

	_, err = run(t, "templates", "--dump", "7")
	assert.Error(t, err)
}
