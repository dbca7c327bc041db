package image

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const metadataFileName = "images.json"

// FileRepository keeps all records in a single JSON document under the image
// base path, rewritten in full on every mutation. The in-memory map is loaded
// once at construction and guarded by the instance mutex; there is no shared
// state outside the instance.
type FileRepository struct {
	path    string
	mu      sync.RWMutex
	records map[string]*ImageRecord
}

func NewFileRepository(basePath string) (*FileRepository, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	r := &FileRepository{path: filepath.Join(basePath, metadataFileName)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.records = make(map[string]*ImageRecord)
			return nil
		}
		return fmt.Errorf("failed to read metadata file: %w", err)
	}

	records := make(map[string]*ImageRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse metadata file: %w", err)
	}
	r.records = records
	return nil
}

// persist rewrites the whole document. Callers must hold the write lock.
func (r *FileRepository) persist() error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}

func (r *FileRepository) Insert(_ context.Context, rec *ImageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		return ErrConflict
	}
	r.records[rec.ID] = rec.Clone()
	return r.persist()
}

func (r *FileRepository) GetByID(_ context.Context, id string) (*ImageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrImageNotFound
	}
	return rec.Clone(), nil
}

func (r *FileRepository) Update(_ context.Context, rec *ImageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = rec.Clone()
	return r.persist()
}

func (r *FileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return nil
	}
	delete(r.records, id)
	return r.persist()
}
