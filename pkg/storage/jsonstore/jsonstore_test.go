package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[record](path)

	if err := store.Save("a", record{Name: "first", Count: 1}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rec, ok, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false, want true")
	}
	if rec.Name != "first" || rec.Count != 1 {
		t.Errorf("Load() = %+v", rec)
	}

	_, ok, err = store.Load("missing")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("Load() found a record that was never saved")
	}
}

func TestStore_DurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	store := New[record](path)
	if err := store.Save("a", record{Name: "persisted"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("b", record{Name: "also persisted"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened := New[record](path)
	all, err := reopened.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAll() len = %d, want 2", len(all))
	}
	if all["a"].Name != "persisted" {
		t.Errorf("record a = %+v", all["a"])
	}
}

func TestStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[record](path)

	if err := store.Save("a", record{Name: "doomed"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, ok, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("record still present after delete")
	}

	// Deleting a missing id is not an error.
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestStore_LoadIsolatedFromCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[*record](path)

	if err := store.Save("a", &record{Name: "stored"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	loaded.Name = "mutated"

	reloaded, _, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Name != "stored" {
		t.Error("mutating a loaded record leaked into the store")
	}
}

func TestStore_SaveIsolatedFromCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[*record](path)

	rec := &record{Name: "stored"}
	if err := store.Save("a", rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rec.Name = "mutated after save"

	loaded, _, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name != "stored" {
		t.Error("mutating a saved record leaked into the store")
	}
}

func TestStore_FailedFlushRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[*record](path)

	if err := store.Save("a", &record{Name: "durable"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A directory squatting on the temp file makes the next flush fail.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := store.Save("a", &record{Name: "never flushed"}); err == nil {
		t.Fatal("Save() with a blocked flush expected an error")
	}
	rec, _, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.Name != "durable" {
		t.Errorf("cache = %q after failed save, want last flushed value", rec.Name)
	}

	if err := store.Save("b", &record{Name: "also never flushed"}); err == nil {
		t.Fatal("Save() of a new id with a blocked flush expected an error")
	}
	if _, ok, _ := store.Load("b"); ok {
		t.Error("failed save of a new id left a cache entry")
	}

	if err := store.Delete("a"); err == nil {
		t.Fatal("Delete() with a blocked flush expected an error")
	}
	if _, ok, _ := store.Load("a"); !ok {
		t.Error("failed delete removed the cache entry")
	}

	if err := os.Remove(path + ".tmp"); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("a", &record{Name: "recovered"}); err != nil {
		t.Fatalf("Save() after unblocking error = %v", err)
	}
}

func TestStore_GetAllCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[record](path)

	if err := store.Save("a", record{Name: "original"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	all["a"] = record{Name: "mutated"}

	rec, _, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.Name != "original" {
		t.Error("mutating the GetAll result leaked into the store")
	}
}
