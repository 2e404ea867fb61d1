package services

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chmouel/lazyuntrack/internal/models"
	"github.com/chmouel/lazyuntrack/internal/utils"
)

const defaultFilePerms = 0o600

// RootKey derives a stable directory name for a project root, used to place
// its state files under the state directory.
func RootKey(root string) string {
	sum := sha256.Sum256([]byte(root))
	return fmt.Sprintf("root-%x", sum[:8])
}

func historyPath(root, stateDir string) string {
	return filepath.Join(stateDir, RootKey(root), models.HistoryFilename)
}

// LoadHistory loads past untrack runs for a project root, newest first. A
// missing file is an empty history, not an error.
func LoadHistory(root, stateDir string) ([]models.HistoryEntry, error) {
	path := historyPath(root, stateDir)
	// #nosec G304 -- path is constructed from vetted directory and constant filename
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var payload struct {
		Entries []models.HistoryEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload.Entries, nil
}

// SaveHistory persists untrack runs for a project root, trimming to the
// retention limit.
func SaveHistory(root, stateDir string, entries []models.HistoryEntry) error {
	if len(entries) > models.HistoryLimit {
		entries = entries[:models.HistoryLimit]
	}

	path := historyPath(root, stateDir)
	if err := os.MkdirAll(filepath.Dir(path), utils.DefaultDirPerms); err != nil {
		return err
	}

	payload := struct {
		Entries []models.HistoryEntry `json:"entries"`
	}{
		Entries: entries,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, defaultFilePerms); err != nil {
		return err
	}
	return nil
}

// AppendHistory stamps the given entries with the current time, prepends
// them to the stored history and saves it. The updated history is returned.
func AppendHistory(root, stateDir string, entries []models.HistoryEntry) ([]models.HistoryEntry, error) {
	if len(entries) == 0 {
		return LoadHistory(root, stateDir)
	}

	now := time.Now().Unix()
	stamped := make([]models.HistoryEntry, len(entries))
	for i, entry := range entries {
		entry.Timestamp = now
		stamped[i] = entry
	}

	existing, err := LoadHistory(root, stateDir)
	if err != nil {
		return nil, err
	}

	updated := append(stamped, existing...)
	if len(updated) > models.HistoryLimit {
		updated = updated[:models.HistoryLimit]
	}
	if err := SaveHistory(root, stateDir, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
