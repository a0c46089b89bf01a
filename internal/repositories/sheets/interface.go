package sheets

import (
	"context"
	"time"
)

// Record is the primary persisted form of a sheet. The portrait asset is
// deliberately not part of it; it is stored under its own key so a large
// image can never block saving the rest of the sheet.
type Record struct {
	SavedAt time.Time         `json:"savedAt"`
	Data    map[string]string `json:"data"`
}

// Repository persists sheets using split storage: one primary record per
// sheet plus an independent portrait asset
type Repository interface {
	// Save upserts the primary record for a sheet
	Save(ctx context.Context, id string, data map[string]string) error

	// Load retrieves the primary record; not found and corrupted records
	// are distinguished by error code
	Load(ctx context.Context, id string) (*Record, error)

	// SavePortrait stores the portrait asset; an empty portrait removes it
	SavePortrait(ctx context.Context, id, portrait string) error

	// LoadPortrait retrieves the portrait asset; an absent key is "" with
	// no error
	LoadPortrait(ctx context.Context, id string) (string, error)

	// List returns the IDs of every saved sheet
	List(ctx context.Context) ([]string, error)

	// Delete removes a sheet's primary record, portrait and index entry
	Delete(ctx context.Context, id string) error
}
