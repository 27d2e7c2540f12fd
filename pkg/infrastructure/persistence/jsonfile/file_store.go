// Package jsonfile persists the record set as a JSON array on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
)

// FileStore reads and writes a single JSON file. Writes go to a temporary
// file in the same directory and are renamed into place.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Verify interface compliance
var _ repositories.Persister = (*FileStore)(nil)

func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored records; a missing file is an empty store
func (s *FileStore) Load(ctx context.Context) ([]entities.InventoryRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entities.InventoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read records file %s: %w", s.path, err)
	}

	var records []entities.InventoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records file %s: %w", s.path, err)
	}
	if records == nil {
		records = []entities.InventoryRecord{}
	}
	return records, nil
}

func (s *FileStore) Save(ctx context.Context, records []entities.InventoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []entities.InventoryRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace records file: %w", err)
	}
	return nil
}
