package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdpal/cmdpal/internal/store"
)

func TestEmbeddedDatasetIsValid(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)

	seen := map[string]bool{}
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Summary, "seed %q needs a summary", c.Name)
		assert.NotEmpty(t, c.Examples, "seed %q needs examples", c.Name)
		assert.Equal(t, store.SourceSeed, c.Source)
		assert.False(t, seen[c.Name], "duplicate seed name %q", c.Name)
		seen[c.Name] = true
	}
}

func TestParseFile(t *testing.T) {
	data := []byte(`[
		{"name": "jq", "summary": "JSON processor", "examples": ["jq . file.json"]},
		{"name": "", "summary": "skipped"},
		{"name": "awk", "description": "pattern scanning language"}
	]`)

	cmds, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "jq", cmds[0].Name)
	// description stands in for a missing summary.
	assert.Equal(t, "pattern scanning language", cmds[1].Summary)

	_, err = ParseFile([]byte("not json"))
	assert.Error(t, err)
}

const samplePage = `# rsync

> Transfer files to local and remote hosts.
> More information: <https://example.com/rsync>.

- Copy a directory to a remote host:

` + "`rsync -avz dir/ user@host:dir/`" + `

- Show progress while transferring:

` + "`rsync -avzP src dst`" + `
`

func TestParseTldrPage(t *testing.T) {
	cmd, err := ParseTldrPage([]byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "rsync", cmd.Name)
	assert.Equal(t, "Transfer files to local and remote hosts", cmd.Summary)
	assert.Equal(t, []string{
		"rsync -avz dir/ user@host:dir/",
		"rsync -avzP src dst",
	}, cmd.Examples)
	assert.Contains(t, cmd.Content, "# rsync")
}

func TestParseTldrPageRejectsUntitled(t *testing.T) {
	_, err := ParseTldrPage([]byte("> no title here\n"))
	assert.Error(t, err)
}

func TestParseTldrDir(t *testing.T) {
	root := t.TempDir()
	common := filepath.Join(root, "common")
	require.NoError(t, os.MkdirAll(common, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(common, "rsync.md"), []byte(samplePage), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(common, "notes.txt"), []byte("ignored"), 0o644))

	cmds, err := ParseTldrDir(root)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "rsync", cmds[0].Name)
	assert.Equal(t, "common", cmds[0].Category)

	_, err = ParseTldrDir(t.TempDir())
	assert.Error(t, err, "an empty tree is an error, not a silent no-op")
}
