package services

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chmouel/lazyuntrack/internal/models"
)

func TestRootKey(t *testing.T) {
	key := RootKey("/work/proj")
	if !strings.HasPrefix(key, "root-") {
		t.Errorf("RootKey = %q, want root- prefix", key)
	}
	if key != RootKey("/work/proj") {
		t.Error("RootKey must be stable for the same path")
	}
	if key == RootKey("/work/other") {
		t.Error("different roots must not collide")
	}
	if strings.ContainsAny(key, "/\\") {
		t.Errorf("RootKey %q is not a safe directory name", key)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	entries, err := LoadHistory("/work/proj", t.TempDir())
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if entries != nil {
		t.Errorf("LoadHistory() = %v, want nil", entries)
	}
}

func TestAppendAndLoadHistory(t *testing.T) {
	stateDir := t.TempDir()
	root := "/work/proj"

	first := []models.HistoryEntry{
		{RepoRoot: root, Files: []string{"a.log", "b.log"}},
	}
	updated, err := AppendHistory(root, stateDir, first)
	if err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}
	if len(updated) != 1 || updated[0].Timestamp == 0 {
		t.Fatalf("first append = %+v", updated)
	}

	second := []models.HistoryEntry{
		{RepoRoot: root, Files: []string{"c.log"}},
	}
	updated, err = AppendHistory(root, stateDir, second)
	if err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("got %d entries, want 2", len(updated))
	}
	if !reflect.DeepEqual(updated[0].Files, []string{"c.log"}) {
		t.Error("newest entry should come first")
	}

	loaded, err := LoadHistory(root, stateDir)
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, updated) {
		t.Errorf("loaded = %+v, want %+v", loaded, updated)
	}
}

func TestAppendHistoryEmptyRunLoadsExisting(t *testing.T) {
	stateDir := t.TempDir()
	root := "/work/proj"

	if _, err := AppendHistory(root, stateDir, []models.HistoryEntry{{RepoRoot: root, Files: []string{"a.log"}}}); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	entries, err := AppendHistory(root, stateDir, nil)
	if err != nil {
		t.Fatalf("AppendHistory(nil) error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("AppendHistory(nil) = %+v, want the stored entry", entries)
	}
}

func TestHistoryRetentionLimit(t *testing.T) {
	stateDir := t.TempDir()
	root := "/work/proj"

	var entries []models.HistoryEntry
	for i := 0; i < models.HistoryLimit+10; i++ {
		entries = append(entries, models.HistoryEntry{RepoRoot: root, Files: []string{"f.log"}})
	}
	if err := SaveHistory(root, stateDir, entries); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	loaded, err := LoadHistory(root, stateDir)
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if len(loaded) != models.HistoryLimit {
		t.Errorf("retained %d entries, want %d", len(loaded), models.HistoryLimit)
	}
}

func TestLoadHistoryCorruptFile(t *testing.T) {
	stateDir := t.TempDir()
	root := "/work/proj"

	path := filepath.Join(stateDir, RootKey(root), models.HistoryFilename)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadHistory(root, stateDir); err == nil {
		t.Error("corrupt history should report an error")
	}
}

func TestHistoryIsolatedPerRoot(t *testing.T) {
	stateDir := t.TempDir()

	if _, err := AppendHistory("/work/alpha", stateDir, []models.HistoryEntry{{RepoRoot: "/work/alpha", Files: []string{"a.log"}}}); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	entries, err := LoadHistory("/work/beta", stateDir)
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if entries != nil {
		t.Errorf("beta history = %v, want nil", entries)
	}
}
