package news

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// readStaticSnapshot loads the persisted static snapshot from disk.
func readStaticSnapshot(path string) (*models.StaticSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snapshot models.StaticSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// writeStaticSnapshot persists the snapshot atomically: write to a temp
// file in the same directory, then rename over the target. Readers never
// observe a partially written file.
func writeStaticSnapshot(path string, snapshot *models.StaticSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".static-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
