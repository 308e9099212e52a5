package store

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"
)

const defaultSearchLimit = 10

var (
	// The FTS5 query syntax treats quote, hyphen, and the wildcard
	// marker specially; everything else outside word characters and
	// whitespace is stripped so arbitrary user input cannot produce a
	// syntax error.
	disallowedQueryChars = regexp.MustCompile(`[^\w\s*"-]+`)
	whitespaceRuns       = regexp.MustCompile(`\s+`)
)

// sanitizeQuery normalizes raw user input into an FTS5 query string. An
// empty result means "no query" and callers route to Recent instead.
func sanitizeQuery(raw string) string {
	q := disallowedQueryChars.ReplaceAllString(raw, " ")
	q = whitespaceRuns.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// matchExpr converts a sanitized query into an FTS5 MATCH expression.
// A bare hyphen inside a token is column-filter/NOT syntax to FTS5, so
// hyphenated tokens ("apt-get") are quoted as phrases; the tokenizer
// then matches them against hyphenated names. Queries already using
// explicit quote syntax pass through untouched.
func matchExpr(q string) string {
	if strings.Contains(q, `"`) {
		return q
	}
	tokens := strings.Fields(q)
	quoted := false
	for i, tok := range tokens {
		if !strings.Contains(tok, "-") {
			continue
		}
		quoted = true
		if base := strings.TrimSuffix(tok, "*"); base != tok {
			tokens[i] = `"` + base + `"*`
		} else {
			tokens[i] = `"` + tok + `"`
		}
	}
	if !quoted {
		return q
	}
	return strings.Join(tokens, " ")
}

// Search returns ranked matches for query. Empty and whitespace-only
// queries (including queries that sanitize to nothing) behave exactly
// like Recent.
func (s *SQLiteStore) Search(query string, limit int) ([]Command, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := sanitizeQuery(query)
	if q == "" {
		return s.Recent(limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	if !s.ftsEnabled {
		return s.scanSearch(q, limit)
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce(cat.name, '')
		FROM commands_fts
		JOIN commands c ON c.id = commands_fts.rowid
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE commands_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, matchExpr(q), limit)
	if err != nil {
		// Malformed residue (e.g. an unbalanced quote) is a query
		// error, not a caller error.
		log.Printf("Warning: full-text search failed: %v", err)
		return []Command{}, nil
	}
	defer rows.Close()
	return s.collectCommands(rows)
}

// scanSearch is the no-FTS5 middle tier: a LIKE scan over the relational
// rows, alphabetical, unranked.
func (s *SQLiteStore) scanSearch(q string, limit int) ([]Command, error) {
	pattern := "%" + strings.Trim(q, `*"`) + "%"
	rows, err := s.db.Query(`
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce(cat.name, '')
		FROM commands c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE c.name LIKE ? OR c.summary LIKE ?
			OR coalesce(c.stands_for, '') LIKE ?
			OR EXISTS (SELECT 1 FROM command_examples e
				WHERE e.command_id = c.id AND e.example LIKE ?)
		ORDER BY c.name COLLATE NOCASE
		LIMIT ?`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		log.Printf("Warning: scan search failed: %v", err)
		return []Command{}, nil
	}
	defer rows.Close()
	return s.collectCommands(rows)
}

// Recent lists commands by most recent usage, never-used commands
// following in alphabetical order. The result is deterministic: recently
// used, then everything else by name.
func (s *SQLiteStore) Recent(limit int) ([]Command, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce(cat.name, '')
		FROM commands c
		LEFT JOIN categories cat ON cat.id = c.category_id
		LEFT JOIN command_history h ON h.command_id = c.id
		GROUP BY c.id
		ORDER BY MAX(h.timestamp) DESC, c.name COLLATE NOCASE
		LIMIT ?`, limit)
	if err != nil {
		log.Printf("Warning: recent query failed: %v", err)
		return []Command{}, nil
	}
	defer rows.Close()
	return s.collectCommands(rows)
}

// GetByName returns the command with the given name, matched
// case-insensitively, or ErrNotFound.
func (s *SQLiteStore) GetByName(name string) (*Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	var cmd Command
	err := s.db.QueryRow(`
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce(cat.name, '')
		FROM commands c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE c.name = ?`, strings.TrimSpace(name)).
		Scan(&cmd.ID, &cmd.Name, &cmd.StandsFor, &cmd.Summary, &cmd.Category)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get command %q: %w", name, err)
	}
	if err := s.hydrate(&cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// collectCommands scans result rows of the shared five-column projection
// and hydrates each with its examples and primary content. A row that
// fails to hydrate is dropped, not fatal.
func (s *SQLiteStore) collectCommands(rows *sql.Rows) ([]Command, error) {
	cmds := []Command{}
	for rows.Next() {
		var cmd Command
		if err := rows.Scan(&cmd.ID, &cmd.Name, &cmd.StandsFor,
			&cmd.Summary, &cmd.Category); err != nil {
			log.Printf("Warning: scan command row: %v", err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if err := rows.Err(); err != nil {
		return cmds, fmt.Errorf("iterate command rows: %w", err)
	}
	// Hydration runs after the cursor is drained; SQLite holds the
	// connection until then.
	for i := range cmds {
		if err := s.hydrate(&cmds[i]); err != nil {
			log.Printf("Warning: hydrate %s: %v", cmds[i].Name, err)
		}
	}
	return cmds, nil
}

// hydrate fills examples, primary content body, display description, and
// the source tag. Absent optional fields resolve to empty values.
func (s *SQLiteStore) hydrate(cmd *Command) error {
	rows, err := s.db.Query(`
		SELECT example FROM command_examples
		WHERE command_id = ?
		ORDER BY sort_order`, cmd.ID)
	if err != nil {
		return fmt.Errorf("load examples: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ex string
		if err := rows.Scan(&ex); err != nil {
			return fmt.Errorf("scan example: %w", err)
		}
		cmd.Examples = append(cmd.Examples, ex)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var content string
	err = s.db.QueryRow(`
		SELECT cc.content FROM command_contents cc
		JOIN content_types ct ON ct.id = cc.content_type_id
		WHERE cc.command_id = ? AND ct.name = ?`,
		cmd.ID, ContentTypeTldr).Scan(&content)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load content: %w", err)
	}

	cmd.Content = content
	cmd.Description = cmd.Summary
	cmd.Source = SourceSQLite
	return nil
}
