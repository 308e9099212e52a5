/*
Package service implements the command-lookup facade.

A Service exposes one uniform contract to callers regardless of which
backend answers: the SQLite store, the in-memory fallback, or (in the
display role) the bridge to the host process. Backend selection happens
once, at construction time; it is never re-checked per call.
*/
package service

import (
	"log"

	"github.com/cmdpal/cmdpal/internal/seed"
	"github.com/cmdpal/cmdpal/internal/store"
)

// Service is the uniform lookup contract consumed by the CLI and served
// over the bridge. No operation is ever expected to crash the caller;
// failures degrade to empty or locally-served results.
type Service interface {
	SearchCommands(query string, limit int) ([]store.Command, error)
	GetCommandByName(name string) (*store.Command, error)
	SaveCommand(cmd store.Command) error
	GetRecentCommands(limit int) ([]store.Command, error)
	GetCommandCount() (int, error)
	LogCommandUsage(commandID int64, rawInput string) error
	Close() error
}

// Host is the privileged-role facade: it owns the durable store, or the
// in-memory fallback if the durable store failed to initialize.
type Host struct {
	backend store.Store
	source  store.Source
}

var _ Service = (*Host)(nil)

// NewHost constructs the host facade. It attempts durable-store
// initialization exactly once; on failure the process is permanently
// marked memory-fallback and the built-in seed dataset is loaded so the
// search box still has something to answer with. On success an empty
// store triggers the one-time seed import through the ordinary write
// path.
func NewHost(dbPath, snapshotPath string) *Host {
	sqlite := store.NewSQLiteStore(dbPath, snapshotPath)
	if err := sqlite.Init(); err != nil {
		log.Printf("Warning: durable store unavailable, falling back to memory: %v", err)
		mem := store.NewMemoryStore()
		if _, err := mem.Import(seed.Commands()); err != nil {
			log.Printf("Warning: seed memory store: %v", err)
		}
		return &Host{backend: mem, source: store.SourceMemory}
	}

	h := &Host{backend: sqlite, source: store.SourceSQLite}
	h.importSeedIfEmpty()
	return h
}

// NewHostWithStore wires an explicit backend; used by the bridge server
// and by tests.
func NewHostWithStore(backend store.Store, source store.Source) *Host {
	return &Host{backend: backend, source: source}
}

func (h *Host) importSeedIfEmpty() {
	count, err := h.backend.CommandCount()
	if err != nil {
		log.Printf("Warning: command count: %v", err)
		return
	}
	if count > 0 {
		return
	}
	n, err := h.backend.Import(seed.Commands())
	if err != nil {
		log.Printf("Warning: seed import: %v", err)
		return
	}
	log.Printf("imported %d seed commands into empty store", n)
}

// Source reports which backend this host selected at construction.
func (h *Host) Source() store.Source { return h.source }

func (h *Host) SearchCommands(query string, limit int) ([]store.Command, error) {
	return h.backend.Search(query, limit)
}

func (h *Host) GetCommandByName(name string) (*store.Command, error) {
	return h.backend.GetByName(name)
}

func (h *Host) SaveCommand(cmd store.Command) error {
	return h.backend.SaveCommand(cmd)
}

func (h *Host) GetRecentCommands(limit int) ([]store.Command, error) {
	return h.backend.Recent(limit)
}

func (h *Host) GetCommandCount() (int, error) {
	return h.backend.CommandCount()
}

func (h *Host) LogCommandUsage(commandID int64, rawInput string) error {
	return h.backend.LogUsage(commandID, rawInput)
}

func (h *Host) Close() error { return h.backend.Close() }

// Remote is the call boundary to the host process, implemented by the
// bridge client. Declared here so the display facade does not depend on
// the transport.
type Remote interface {
	SearchCommands(query string, limit int) ([]store.Command, error)
	GetCommandByName(name string) (*store.Command, error)
	SaveCommand(cmd store.Command) error
	GetRecentCommands(limit int) ([]store.Command, error)
	GetCommandCount() (int, error)
	LogCommandUsage(commandID int64, rawInput string) error
}

// Display is the sandboxed-role facade. It never opens the durable store;
// every call is forwarded over the bridge, and a bridge failure degrades
// to a local in-memory scan over the built-in seed list so lookups never
// simply throw.
type Display struct {
	remote   Remote
	fallback *store.MemoryStore
}

var _ Service = (*Display)(nil)

// NewDisplay constructs the display facade around a bridge client.
func NewDisplay(remote Remote) *Display {
	fallback := store.NewMemoryStore()
	if _, err := fallback.Import(seed.Commands()); err != nil {
		log.Printf("Warning: seed display fallback: %v", err)
	}
	return &Display{remote: remote, fallback: fallback}
}

func (d *Display) SearchCommands(query string, limit int) ([]store.Command, error) {
	cmds, err := d.remote.SearchCommands(query, limit)
	if err != nil {
		log.Printf("Warning: bridge search failed, serving local results: %v", err)
		return d.fallback.Search(query, limit)
	}
	return cmds, nil
}

func (d *Display) GetCommandByName(name string) (*store.Command, error) {
	cmd, err := d.remote.GetCommandByName(name)
	if err != nil && err != store.ErrNotFound {
		log.Printf("Warning: bridge lookup failed, serving local result: %v", err)
		return d.fallback.GetByName(name)
	}
	return cmd, err
}

func (d *Display) SaveCommand(cmd store.Command) error {
	if err := d.remote.SaveCommand(cmd); err != nil {
		log.Printf("Warning: bridge save failed, saving locally: %v", err)
		return d.fallback.SaveCommand(cmd)
	}
	return nil
}

func (d *Display) GetRecentCommands(limit int) ([]store.Command, error) {
	cmds, err := d.remote.GetRecentCommands(limit)
	if err != nil {
		log.Printf("Warning: bridge recent failed, serving local results: %v", err)
		return d.fallback.Recent(limit)
	}
	return cmds, nil
}

func (d *Display) GetCommandCount() (int, error) {
	count, err := d.remote.GetCommandCount()
	if err != nil {
		log.Printf("Warning: bridge count failed, serving local count: %v", err)
		return d.fallback.CommandCount()
	}
	return count, nil
}

func (d *Display) LogCommandUsage(commandID int64, rawInput string) error {
	if err := d.remote.LogCommandUsage(commandID, rawInput); err != nil {
		log.Printf("Warning: bridge usage log failed, logging locally: %v", err)
		return d.fallback.LogUsage(commandID, rawInput)
	}
	return nil
}

// Close releases the local fallback only; the remote end belongs to the
// host process.
func (d *Display) Close() error { return d.fallback.Close() }
