package store

import (
	"fmt"
	"strings"
	"time"
)

// MemoryStore is the pure in-process fallback variant of Store. It mirrors
// the durable store's contract with no persistence across restarts.
//
// It is not synchronized: its only consumers are the host process after a
// failed durable-store init and the display process's degraded path, both
// of which drive it from a single goroutine at a time.
type MemoryStore struct {
	records  []*Command
	byName   map[string]*Command
	contents map[string]map[string]string
	history  []HistoryEntry
	maxID    int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byName:   make(map[string]*Command),
		contents: make(map[string]map[string]string),
	}
}

// Search matches query case-insensitively against name, summary,
// stands_for, or any example substring. This is a deliberate
// simplification of the ranked full-text semantics: results come back in
// insertion order, unranked.
func (m *MemoryStore) Search(query string, limit int) ([]Command, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return m.Recent(limit)
	}

	matches := []Command{}
	for _, rec := range m.records {
		if len(matches) >= limit {
			break
		}
		if m.matches(rec, q) {
			matches = append(matches, m.export(rec))
		}
	}
	return matches, nil
}

func (m *MemoryStore) matches(rec *Command, q string) bool {
	if strings.Contains(strings.ToLower(rec.Name), q) ||
		strings.Contains(strings.ToLower(rec.Summary), q) ||
		strings.Contains(strings.ToLower(rec.StandsFor), q) {
		return true
	}
	for _, ex := range rec.Examples {
		if strings.Contains(strings.ToLower(ex), q) {
			return true
		}
	}
	return false
}

// Recent returns the first limit records in insertion order. Usage
// history is not consulted in this backend.
func (m *MemoryStore) Recent(limit int) ([]Command, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	out := []Command{}
	for _, rec := range m.records {
		if len(out) >= limit {
			break
		}
		out = append(out, m.export(rec))
	}
	return out, nil
}

// GetByName returns the command with the given name (case-insensitive),
// or ErrNotFound.
func (m *MemoryStore) GetByName(name string) (*Command, error) {
	rec, ok := m.byName[normalizeName(name)]
	if !ok {
		return nil, ErrNotFound
	}
	cmd := m.export(rec)
	return &cmd, nil
}

// SaveCommand upserts by name. An existing record keeps its id; new
// records receive the next unused integer id.
func (m *MemoryStore) SaveCommand(cmd Command) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return fmt.Errorf("save command: name is required")
	}
	key := normalizeName(name)

	rec, ok := m.byName[key]
	if !ok {
		m.maxID++
		rec = &Command{ID: m.maxID}
		m.records = append(m.records, rec)
		m.byName[key] = rec
	}

	rec.Name = name
	rec.StandsFor = cmd.StandsFor
	rec.Summary = cmd.Summary
	rec.Category = cmd.Category
	rec.Examples = append([]string(nil), cmd.Examples...)
	if cmd.Content != "" {
		m.setContent(key, ContentTypeTldr, cmd.Content)
	}
	return nil
}

// GetContent returns the body for (name, contentType), or "".
func (m *MemoryStore) GetContent(name, contentType string) (string, error) {
	return m.contents[normalizeName(name)][contentType], nil
}

// SaveContent upserts the body for (name, contentType). The command must
// already exist.
func (m *MemoryStore) SaveContent(name, contentType, content string) error {
	key := normalizeName(name)
	if _, ok := m.byName[key]; !ok {
		return ErrNotFound
	}
	m.setContent(key, contentType, content)
	return nil
}

func (m *MemoryStore) setContent(key, contentType, content string) {
	if m.contents[key] == nil {
		m.contents[key] = make(map[string]string)
	}
	m.contents[key][contentType] = content
}

// LogUsage appends to the in-process usage log. Recent ignores it.
func (m *MemoryStore) LogUsage(commandID int64, rawInput string) error {
	m.history = append(m.history, HistoryEntry{
		ID:        int64(len(m.history) + 1),
		CommandID: commandID,
		RawInput:  rawInput,
		Timestamp: time.Now(),
	})
	return nil
}

// History exposes the usage log for inspection.
func (m *MemoryStore) History() []HistoryEntry {
	return m.history
}

// Import bulk-loads records through SaveCommand.
func (m *MemoryStore) Import(cmds []Command) (int, error) {
	saved := 0
	for _, cmd := range cmds {
		if err := m.SaveCommand(cmd); err != nil {
			continue
		}
		saved++
	}
	return saved, nil
}

// CommandCount returns the number of stored commands.
func (m *MemoryStore) CommandCount() (int, error) {
	return len(m.records), nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// export copies a record for callers, tagged with this backend's source.
func (m *MemoryStore) export(rec *Command) Command {
	cmd := *rec
	cmd.Examples = append([]string(nil), rec.Examples...)
	cmd.Content = m.contents[normalizeName(rec.Name)][ContentTypeTldr]
	cmd.Description = cmd.Summary
	cmd.Source = SourceMemory
	return cmd
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
