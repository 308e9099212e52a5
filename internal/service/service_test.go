package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdpal/cmdpal/internal/seed"
	"github.com/cmdpal/cmdpal/internal/store"
)

func TestHostImportsSeedIntoEmptyStore(t *testing.T) {
	dir := t.TempDir()
	h := NewHost(filepath.Join(dir, "cmdpal.db"), "")
	defer h.Close()

	assert.Equal(t, store.SourceSQLite, h.Source())

	count, err := h.GetCommandCount()
	require.NoError(t, err)
	assert.Equal(t, len(seed.Commands()), count)

	got, err := h.GetCommandByName("tar")
	require.NoError(t, err)
	assert.Equal(t, "Archive and extract files", got.Summary)
}

func TestHostSkipsSeedImportWhenStoreHasData(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cmdpal.db")

	s := store.NewSQLiteStore(dbPath, "")
	require.NoError(t, s.Init())
	require.NoError(t, s.SaveCommand(store.Command{Name: "only", Summary: "one"}))
	require.NoError(t, s.Close())

	h := NewHost(dbPath, "")
	defer h.Close()

	count, err := h.GetCommandCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "non-empty stores are never re-seeded")
}

func TestHostFallsBackToMemoryWhenStoreUnavailable(t *testing.T) {
	// Database path under a regular file: init must fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	h := NewHost(filepath.Join(blocker, "cmdpal.db"), "")
	defer h.Close()

	assert.Equal(t, store.SourceMemory, h.Source())

	// The fallback is seeded, so lookups still answer.
	results, err := h.SearchCommands("git", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, store.SourceMemory, results[0].Source)
}

func TestHostUsageLoggingIsExplicit(t *testing.T) {
	dir := t.TempDir()
	h := NewHost(filepath.Join(dir, "cmdpal.db"), "")
	defer h.Close()

	// Saving must not create history: recent stays alphabetical.
	require.NoError(t, h.SaveCommand(store.Command{Name: "zz-last", Summary: "late"}))

	recent, err := h.GetRecentCommands(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.NotEqual(t, "zz-last", recent[0].Name)

	// An explicit usage event does.
	cmd, err := h.GetCommandByName("zz-last")
	require.NoError(t, err)
	require.NoError(t, h.LogCommandUsage(cmd.ID, "zz"))

	recent, err = h.GetRecentCommands(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "zz-last", recent[0].Name)
}

// failingRemote simulates a dead bridge: every call errors.
type failingRemote struct{}

var errBridgeDown = errors.New("bridge down")

func (failingRemote) SearchCommands(string, int) ([]store.Command, error) {
	return nil, errBridgeDown
}
func (failingRemote) GetCommandByName(string) (*store.Command, error) {
	return nil, errBridgeDown
}
func (failingRemote) SaveCommand(store.Command) error { return errBridgeDown }
func (failingRemote) GetRecentCommands(int) ([]store.Command, error) {
	return nil, errBridgeDown
}
func (failingRemote) GetCommandCount() (int, error) { return 0, errBridgeDown }
func (failingRemote) LogCommandUsage(int64, string) error { return errBridgeDown }

// workingRemote serves from a host over a plain function call.
type workingRemote struct{ h *Host }

func (r workingRemote) SearchCommands(q string, n int) ([]store.Command, error) {
	return r.h.SearchCommands(q, n)
}
func (r workingRemote) GetCommandByName(name string) (*store.Command, error) {
	return r.h.GetCommandByName(name)
}
func (r workingRemote) SaveCommand(cmd store.Command) error { return r.h.SaveCommand(cmd) }
func (r workingRemote) GetRecentCommands(n int) ([]store.Command, error) {
	return r.h.GetRecentCommands(n)
}
func (r workingRemote) GetCommandCount() (int, error) { return r.h.GetCommandCount() }
func (r workingRemote) LogCommandUsage(id int64, raw string) error {
	return r.h.LogCommandUsage(id, raw)
}

func TestDisplayForwardsOverBridge(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.SaveCommand(store.Command{Name: "kubectl", Summary: "cluster cli"}))
	host := NewHostWithStore(mem, store.SourceMemory)

	d := NewDisplay(workingRemote{h: host})
	defer d.Close()

	got, err := d.GetCommandByName("kubectl")
	require.NoError(t, err)
	assert.Equal(t, "cluster cli", got.Summary)

	count, err := d.GetCommandCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDisplayDegradesWhenBridgeFails(t *testing.T) {
	d := NewDisplay(failingRemote{})
	defer d.Close()

	// Searches never throw: the local seed list answers instead.
	results, err := d.SearchCommands("git", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, store.SourceMemory, results[0].Source)

	recent, err := d.GetRecentCommands(5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	count, err := d.GetCommandCount()
	require.NoError(t, err)
	assert.Equal(t, len(seed.Commands()), count)
}

func TestDisplayNotFoundIsNotDegradation(t *testing.T) {
	mem := store.NewMemoryStore()
	host := NewHostWithStore(mem, store.SourceMemory)
	d := NewDisplay(workingRemote{h: host})
	defer d.Close()

	// A clean miss from the host must come back as a miss, not be
	// retried against the local seed list.
	_, err := d.GetCommandByName("definitely-absent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
