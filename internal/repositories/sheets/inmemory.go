package sheets

import (
	"context"
	"sync"
	"time"

	sheeterr "github.com/lozrp/sheetd/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the sheet repository.
// Useful for testing and development.
type InMemoryRepository struct {
	mu        sync.RWMutex
	records   map[string]*Record
	portraits map[string]string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records:   make(map[string]*Record),
		portraits: make(map[string]string),
	}
}

// Save upserts the primary record for a sheet
func (r *InMemoryRepository) Save(ctx context.Context, id string, data map[string]string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}
	if data == nil {
		return sheeterr.InvalidArgument("sheet data cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy to avoid external modifications
	dataCopy := make(map[string]string, len(data))
	for k, v := range data {
		dataCopy[k] = v
	}
	r.records[id] = &Record{
		SavedAt: time.Now().UTC(),
		Data:    dataCopy,
	}
	return nil
}

// Load retrieves the primary record for a sheet
func (r *InMemoryRepository) Load(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, sheeterr.InvalidArgument("sheet ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, sheeterr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}

	dataCopy := make(map[string]string, len(record.Data))
	for k, v := range record.Data {
		dataCopy[k] = v
	}
	return &Record{SavedAt: record.SavedAt, Data: dataCopy}, nil
}

// SavePortrait stores the portrait asset
func (r *InMemoryRepository) SavePortrait(ctx context.Context, id, portrait string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if portrait == "" {
		delete(r.portraits, id)
		return nil
	}
	r.portraits[id] = portrait
	return nil
}

// LoadPortrait retrieves the portrait asset
func (r *InMemoryRepository) LoadPortrait(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", sheeterr.InvalidArgument("sheet ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.portraits[id], nil
}

// List returns the IDs of every saved sheet
func (r *InMemoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a sheet
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return sheeterr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}

	delete(r.records, id)
	delete(r.portraits, id)
	return nil
}
