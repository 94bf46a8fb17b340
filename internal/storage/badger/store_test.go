package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bobmcallan/ardex/internal/common"
)

// --- Test helpers ---

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := common.NewSilentLogger()
	store, err := NewStore(logger, filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// --- Store tests ---

func TestStore_OpenClose(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(common.NewSilentLogger(), filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.DB() == nil {
		t.Fatal("expected non-nil DB")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStore_CloseNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil DB should not error: %v", err)
	}
}

// --- KV Storage tests ---

func TestKVStorage_CRUD(t *testing.T) {
	store := newTestStore(t)
	kv := NewKVStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	// Get non-existent
	if _, err := kv.Get(ctx, "vault"); err == nil {
		t.Fatal("expected error for non-existent key")
	}

	// Set + Get
	if err := kv.Set(ctx, "vault", `{"salt":"abc"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, err := kv.Get(ctx, "vault")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != `{"salt":"abc"}` {
		t.Errorf("unexpected value: %s", val)
	}

	// Overwrite
	if err := kv.Set(ctx, "vault", `{"salt":"def"}`); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	val, _ = kv.Get(ctx, "vault")
	if val != `{"salt":"def"}` {
		t.Errorf("expected overwritten value, got %s", val)
	}

	// GetAll
	kv.Set(ctx, "txlog", `[]`)
	all, err := kv.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 keys, got %d", len(all))
	}

	// Delete
	if err := kv.Delete(ctx, "vault"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get(ctx, "vault"); err == nil {
		t.Fatal("expected error after delete")
	}

	// Delete non-existent (should not error)
	if err := kv.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete non-existent should not error: %v", err)
	}
}
