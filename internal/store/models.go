/*
Package store provides data models shared by the SQLite store, the
in-memory fallback store, and everything above them.
*/
package store

import "time"

// Source identifies which backend produced a Command instance.
type Source string

const (
	// SourceSQLite marks commands read from the durable SQLite store.
	SourceSQLite Source = "sqlite"

	// SourceMemory marks commands served by the in-memory fallback store.
	SourceMemory Source = "memory"

	// SourceSeed marks commands from the built-in seed dataset.
	SourceSeed Source = "seed"

	// SourceAPI is reserved for the external lookup integration.
	SourceAPI Source = "api"
)

// Content type names seeded at schema creation. At most one content body
// exists per command per content type.
const (
	ContentTypeTldr         = "tldr"
	ContentTypeManpage      = "manpage"
	ContentTypeChtsh        = "chtsh"
	ContentTypeExplainshell = "explainshell"
)

// Command is the value object exposed at every boundary (store, facade,
// bridge). Name is the natural key; writes are upserts keyed by name.
type Command struct {
	// ID is the surrogate key assigned by the backend that produced
	// this instance. Zero for commands that were never saved.
	ID int64 `json:"id,omitempty"`

	// Name is the command name, matched case-insensitively on lookup.
	Name string `json:"name"`

	// StandsFor expands abbreviated names (e.g. "grep" -> "global
	// regular expression print"). Optional.
	StandsFor string `json:"standsFor,omitempty"`

	// Summary is the short one-line description.
	Summary string `json:"summary"`

	// Description is the display alias of Summary.
	Description string `json:"description,omitempty"`

	// Examples are ordered usage examples. Saving replaces the full
	// set; order is preserved.
	Examples []string `json:"examples,omitempty"`

	// Category is the denormalized category name. Optional.
	Category string `json:"category,omitempty"`

	// Content is the primary ("tldr"-type) textual body. Optional.
	Content string `json:"content,omitempty"`

	// Source tags the backend that produced this instance.
	Source Source `json:"source,omitempty"`
}

// CacheEntry is a row of the generic TTL cache. Entries are invisible to
// readers once ExpiresAt has passed, whether or not they have been swept.
type CacheEntry struct {
	Key         string    `json:"key"`
	Content     string    `json:"content"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryEntry is an append-only usage log record. CommandID is zero when
// the referenced command has since been deleted; history survives deletion.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	CommandID int64     `json:"commandId,omitempty"`
	RawInput  string    `json:"rawInput"`
	Timestamp time.Time `json:"timestamp"`
}
