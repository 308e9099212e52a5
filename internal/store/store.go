package store

import "errors"

// Sentinel errors returned by both store variants.
var (
	// ErrNotInitialized is returned when an operation runs before Init
	// succeeded, or after the store has been closed.
	ErrNotInitialized = errors.New("store: not initialized")

	// ErrNotFound is returned by lookups that matched no command.
	// Search and cache reads represent absence as empty/nil instead.
	ErrNotFound = errors.New("store: command not found")
)

// The closed set of backend variants.
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Store is the uniform contract shared by the SQLite-backed store and the
// in-memory fallback. The facade selects exactly one variant at
// construction time and never re-checks per call.
type Store interface {
	// Search returns ranked matches for query, at most limit. An empty
	// or whitespace-only query behaves exactly like Recent.
	Search(query string, limit int) ([]Command, error)

	// Recent returns up to limit commands, most recently used first,
	// never-used commands following in alphabetical order.
	Recent(limit int) ([]Command, error)

	// GetByName returns the command with the given name
	// (case-insensitive), or ErrNotFound.
	GetByName(name string) (*Command, error)

	// SaveCommand upserts a command by name as one atomic unit:
	// category, command row, full example replacement, and primary
	// content body all succeed or none do.
	SaveCommand(cmd Command) error

	// GetContent returns the content body for (name, contentType), or
	// "" when absent.
	GetContent(name, contentType string) (string, error)

	// SaveContent upserts the content body for (name, contentType).
	SaveContent(name, contentType, content string) error

	// LogUsage appends a usage-history record. Usage logging is an
	// explicit caller decision, never a side effect of SaveCommand.
	LogUsage(commandID int64, rawInput string) error

	// Import bulk-loads records through the same write path as
	// SaveCommand, one record at a time.
	Import(cmds []Command) (int, error)

	// CommandCount returns the number of stored commands.
	CommandCount() (int, error)

	// Close releases backend resources.
	Close() error
}
