package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// SaveCommand upserts a command by name as one atomic unit. Category
// resolution, the command row, full example replacement, and the primary
// content body all commit together or not at all.
//
// Usage history is not written here; logging a usage event is an explicit
// LogUsage call, so imports and edits never masquerade as searches.
func (s *SQLiteStore) SaveCommand(cmd Command) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return fmt.Errorf("save command: name is required")
	}

	return s.transaction(func(tx *sql.Tx) error {
		categoryID, err := resolveCategory(tx, cmd.Category)
		if err != nil {
			return err
		}

		// Identity is the name, never the id the caller happens to
		// carry.
		var commandID int64
		err = tx.QueryRow("SELECT id FROM commands WHERE name = ?", name).
			Scan(&commandID)
		switch {
		case err == sql.ErrNoRows:
			res, err := tx.Exec(`
				INSERT INTO commands (name, stands_for, summary, category_id)
				VALUES (?, ?, ?, ?)`,
				name, nullable(cmd.StandsFor), cmd.Summary, categoryID)
			if err != nil {
				return fmt.Errorf("insert command %q: %w", name, err)
			}
			if commandID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert command %q: %w", name, err)
			}
		case err != nil:
			return fmt.Errorf("find command %q: %w", name, err)
		default:
			if _, err := tx.Exec(`
				UPDATE commands
				SET stands_for = ?, summary = ?, category_id = ?,
					updated_at = datetime('now')
				WHERE id = ?`,
				nullable(cmd.StandsFor), cmd.Summary, categoryID, commandID); err != nil {
				return fmt.Errorf("update command %q: %w", name, err)
			}
		}

		if err := replaceExamples(tx, commandID, cmd.Examples); err != nil {
			return err
		}

		if cmd.Content != "" {
			if err := upsertContent(tx, commandID, ContentTypeTldr, cmd.Content); err != nil {
				return err
			}
		}
		return nil
	})
}

// resolveCategory returns the id for name, inserting the category on
// first use. A command without a category gets a NULL reference.
func resolveCategory(tx *sql.Tx, name string) (interface{}, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var id int64
	err := tx.QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name)
		if err != nil {
			return nil, fmt.Errorf("insert category %q: %w", name, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("insert category %q: %w", name, err)
		}
		return id, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	return id, nil
}

// replaceExamples deletes the full existing set and reinserts in order.
// Replace-all, never merge: sort_order restarts at 0 every save.
func replaceExamples(tx *sql.Tx, commandID int64, examples []string) error {
	if _, err := tx.Exec(
		"DELETE FROM command_examples WHERE command_id = ?", commandID); err != nil {
		return fmt.Errorf("clear examples: %w", err)
	}
	for i, ex := range examples {
		if _, err := tx.Exec(`
			INSERT INTO command_examples (command_id, example, sort_order)
			VALUES (?, ?, ?)`, commandID, ex, i); err != nil {
			return fmt.Errorf("insert example %d: %w", i, err)
		}
	}
	return nil
}

// upsertContent writes at most one body per command per content type.
func upsertContent(tx *sql.Tx, commandID int64, contentType, content string) error {
	var typeID int64
	err := tx.QueryRow("SELECT id FROM content_types WHERE name = ?", contentType).
		Scan(&typeID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("unknown content type %q", contentType)
	}
	if err != nil {
		return fmt.Errorf("find content type %q: %w", contentType, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO command_contents (command_id, content_type_id, content, format)
		VALUES (?, ?, ?, 'markdown')
		ON CONFLICT (command_id, content_type_id) DO UPDATE SET
			content = excluded.content,
			updated_at = datetime('now')`,
		commandID, typeID, content); err != nil {
		return fmt.Errorf("upsert content: %w", err)
	}
	return nil
}

// LogUsage appends a usage-history record. A zero commandID records the
// raw input with no command reference (lookups that matched nothing).
func (s *SQLiteStore) LogUsage(commandID int64, rawInput string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrNotInitialized
	}
	if _, err := s.db.Exec(`
		INSERT INTO command_history (command_id, raw_input)
		VALUES (nullif(?, 0), ?)`, commandID, rawInput); err != nil {
		return fmt.Errorf("log usage: %w", err)
	}
	return nil
}

// GetContent returns the body for (name, contentType), or "" when absent.
func (s *SQLiteStore) GetContent(name, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", ErrNotInitialized
	}
	var content string
	err := s.db.QueryRow(`
		SELECT cc.content FROM command_contents cc
		JOIN commands c ON c.id = cc.command_id
		JOIN content_types ct ON ct.id = cc.content_type_id
		WHERE c.name = ? AND ct.name = ?`, name, contentType).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get content: %w", err)
	}
	return content, nil
}

// SaveContent upserts the body for (name, contentType). The command must
// already exist.
func (s *SQLiteStore) SaveContent(name, contentType, content string) error {
	return s.transaction(func(tx *sql.Tx) error {
		var commandID int64
		err := tx.QueryRow("SELECT id FROM commands WHERE name = ?",
			strings.TrimSpace(name)).Scan(&commandID)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find command %q: %w", name, err)
		}
		return upsertContent(tx, commandID, contentType, content)
	})
}

// Import bulk-loads records through the ordinary save path, one record
// per call. It returns the number of records saved; individual failures
// are logged and skipped so one bad record cannot abort a seed load.
func (s *SQLiteStore) Import(cmds []Command) (int, error) {
	saved := 0
	for _, cmd := range cmds {
		if err := s.SaveCommand(cmd); err != nil {
			log.Printf("Warning: import %q: %v", cmd.Name, err)
			continue
		}
		saved++
	}
	return saved, nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
