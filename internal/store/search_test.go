package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "git", "git"},
		{"trims", "  git  ", "git"},
		{"collapses whitespace", "git   log", "git log"},
		{"keeps wildcard and quotes", `gi* "exact phrase"`, `gi* "exact phrase"`},
		{"keeps hyphen", "apt-get", "apt-get"},
		{"strips punctuation", "rm;DROP TABLE--ok", "rm DROP TABLE--ok"},
		{"only disallowed chars", "@#$%", ""},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeQuery(tt.in))
		})
	}
}

func TestMatchExpr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain token", "git", "git"},
		{"prefix token", "gi*", "gi*"},
		{"hyphenated token", "apt-get", `"apt-get"`},
		{"hyphenated prefix", "apt-g*", `"apt-g"*`},
		{"leading hyphen", "-get", `"-get"`},
		{"mixed tokens", "install apt-get", `install "apt-get"`},
		{"explicit quotes untouched", `"exact phrase"`, `"exact phrase"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchExpr(tt.in))
		})
	}
}

func TestSearchHyphenatedName(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveCommand(Command{
		Name:     "apt-get",
		Summary:  "package handling utility",
		Examples: []string{"apt-get install pkg"},
	}))

	results, err := s.Search("apt-get", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "apt-get", results[0].Name)

	// A leading hyphen is plain text, never the NOT operator.
	results, err = s.Search("-get", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "apt-get", results[0].Name)
}

func seedSearchStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := newTestStore(t)
	for _, cmd := range []Command{
		{Name: "git", Summary: "version control", Category: "development",
			Examples: []string{"git status", "git commit -m msg"},
			Content:  "# git\n\nDistributed version control."},
		{Name: "grep", StandsFor: "global regular expression print",
			Summary: "search file contents", Category: "text",
			Examples: []string{"grep -r pattern ."}},
		{Name: "ls", Summary: "list directory contents", Category: "files",
			Examples: []string{"ls -la"}},
	} {
		require.NoError(t, s.SaveCommand(cmd))
	}
	return s
}

func TestSearchMatchesIndexedFields(t *testing.T) {
	s := seedSearchStore(t)

	names := func(cmds []Command) []string {
		out := make([]string, len(cmds))
		for i, c := range cmds {
			out[i] = c.Name
		}
		return out
	}

	// Name match.
	results, err := s.Search("git", 10)
	require.NoError(t, err)
	assert.Contains(t, names(results), "git")

	// Summary match.
	results, err = s.Search("directory", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls"}, names(results))

	// stands_for match.
	results, err = s.Search("expression", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"grep"}, names(results))

	// Example text match.
	results, err = s.Search("commit", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, names(results))

	// Content body match.
	results, err = s.Search("distributed", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, names(results))

	// Category name match.
	results, err = s.Search("development", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, names(results))
}

func TestSearchResultRowsAreAssembled(t *testing.T) {
	s := seedSearchStore(t)

	results, err := s.Search("version", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "git", got.Name)
	assert.Equal(t, "development", got.Category)
	assert.Equal(t, []string{"git status", "git commit -m msg"}, got.Examples)
	assert.Equal(t, "# git\n\nDistributed version control.", got.Content)
	assert.Equal(t, got.Summary, got.Description)
	assert.Equal(t, SourceSQLite, got.Source)
}

func TestSearchRespectsLimit(t *testing.T) {
	s := seedSearchStore(t)
	// The prefix wildcard matches both git and grep.
	results, err := s.Search("g*", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestEmptyQueryRoutesToRecent(t *testing.T) {
	s := seedSearchStore(t)

	recent, err := s.Recent(10)
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "@#$%"} {
		results, err := s.Search(query, 10)
		require.NoError(t, err)
		require.Len(t, results, len(recent), "query %q", query)
		for i := range recent {
			assert.Equal(t, recent[i].Name, results[i].Name, "query %q", query)
		}
	}
}

func TestSearchUpdatedAfterResave(t *testing.T) {
	s := seedSearchStore(t)

	// The trigger-maintained index must follow the relational rows.
	require.NoError(t, s.SaveCommand(Command{
		Name: "ls", Summary: "enumerate folder entries", Category: "files",
	}))

	results, err := s.Search("directory", 10)
	require.NoError(t, err)
	assert.Empty(t, results, "stale index row must be gone")

	results, err = s.Search("enumerate", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ls", results[0].Name)
}

func TestRecentOrdering(t *testing.T) {
	s := seedSearchStore(t)

	// Use one command; the rest have no history.
	grep, err := s.GetByName("grep")
	require.NoError(t, err)
	require.NoError(t, s.LogUsage(grep.ID, "gre"))

	results, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Recently used first, then never-used alphabetically.
	assert.Equal(t, "grep", results[0].Name)
	assert.Equal(t, "git", results[1].Name)
	assert.Equal(t, "ls", results[2].Name)
}

func TestRecentWithoutHistoryIsAlphabetical(t *testing.T) {
	s := seedSearchStore(t)

	results, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "git", results[0].Name)
	assert.Equal(t, "grep", results[1].Name)
}

func TestScanSearchFallback(t *testing.T) {
	s := seedSearchStore(t)
	// Force the no-FTS5 middle tier.
	s.ftsEnabled = false

	results, err := s.Search("direct", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ls", results[0].Name)

	// Substring matching covers example text too.
	results, err = s.Search("commit", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "git", results[0].Name)
}
