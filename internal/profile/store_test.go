package profile

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := Open("   "); err == nil {
		t.Error("expected error for blank path")
	}
}

func TestRecordActivity(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Shutdown()

	if _, ok := store.LastActivity(); ok {
		t.Fatal("fresh profile must have no activity")
	}
	if err := store.RecordActivity(); err != nil {
		t.Fatalf("record activity: %v", err)
	}
	first, ok := store.LastActivity()
	if !ok {
		t.Fatal("expected activity recorded")
	}
	if err := store.RecordActivity(); err != nil {
		t.Fatalf("record activity again: %v", err)
	}
	second, ok := store.LastActivity()
	if !ok {
		t.Fatal("expected activity still recorded")
	}
	if second.Before(first) {
		t.Errorf("activity must move forward: %v then %v", first, second)
	}
}

func TestDeviceRegistry(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Shutdown()

	if _, ok := store.DeviceName("dev-1"); ok {
		t.Fatal("unknown device must not resolve")
	}
	if err := store.RememberDevice("dev-1", "Pixel 8"); err != nil {
		t.Fatalf("remember device: %v", err)
	}
	name, ok := store.DeviceName("dev-1")
	if !ok || name != "Pixel 8" {
		t.Errorf("expected Pixel 8, got %q/%v", name, ok)
	}

	// Renames overwrite.
	if err := store.RememberDevice("dev-1", "Pixel 9"); err != nil {
		t.Fatalf("rename device: %v", err)
	}
	if name, _ := store.DeviceName("dev-1"); name != "Pixel 9" {
		t.Errorf("expected rename to stick, got %q", name)
	}

	// Empty IDs are ignored.
	if err := store.RememberDevice("", "ghost"); err != nil {
		t.Fatalf("empty id: %v", err)
	}
}

func TestRegistrySurvivesReopen(t *testing.T) {
	store, path := openTestStore(t)
	if err := store.RememberDevice("dev-1", "Pixel 8"); err != nil {
		t.Fatalf("remember device: %v", err)
	}
	if err := store.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Shutdown()
	if name, ok := reopened.DeviceName("dev-1"); !ok || name != "Pixel 8" {
		t.Errorf("registry must persist across reopen, got %q/%v", name, ok)
	}
}

func TestShutdownIsIdempotentOnNil(t *testing.T) {
	var store *Store
	if err := store.Shutdown(); err != nil {
		t.Errorf("nil store shutdown must be a no-op, got %v", err)
	}
}
