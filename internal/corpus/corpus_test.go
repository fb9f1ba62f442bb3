package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantText  string
		wantTitle string
	}{
		{
			name:      "with frontmatter",
			content:   "---\ntitle: Стихи\nlang: ru\n---\nМороз и солнце",
			wantText:  "Мороз и солнце",
			wantTitle: "Стихи",
		},
		{
			name:     "no frontmatter",
			content:  "Мороз и солнце",
			wantText: "Мороз и солнце",
		},
		{
			name:     "unterminated frontmatter",
			content:  "---\ntitle: x\nтекст",
			wantText: "---\ntitle: x\nтекст",
		},
		{
			name:     "invalid yaml kept as text",
			content:  "---\ntitle: [unclosed\n---\nтекст",
			wantText: "---\ntitle: [unclosed\n---\nтекст",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseMarkdown(tt.content)
			assert.Equal(t, tt.wantText, doc.Text)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.NotNil(t, doc.Meta)
		})
	}
}

func TestLoad_FilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "аааа")
	writeFile(t, filepath.Join(dir, "nested", "b.md"), "---\ntitle: б\n---\nбббб")
	writeFile(t, filepath.Join(dir, "skip.json"), `{"ключ": "яяяя"}`)

	single := filepath.Join(t.TempDir(), "extra.dat")
	writeFile(t, single, "вв")

	ref, err := Load(dir, single)
	require.NoError(t, err)
	require.Len(t, ref.Documents, 3)

	assert.Equal(t, "аааа\nбббб\nвв", ref.Text())
	assert.Equal(t, "б", ref.Documents[1].Title)

	dist := ref.Distribution()
	assert.InDelta(t, 0.4, dist.Of('а'), 1e-9)
	assert.InDelta(t, 0.4, dist.Of('б'), 1e-9)
	assert.InDelta(t, 0.2, dist.Of('в'), 1e-9)
	assert.Zero(t, dist.Of('я'))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFromText(t *testing.T) {
	ref := FromText("аб")
	assert.Equal(t, "аб", ref.Text())
	assert.InDelta(t, 0.5, ref.Distribution().Of('б'), 1e-9)
}
