package image

import "context"

// Repository is the metadata-store contract. All backends key records by id,
// guarantee read-after-write visibility per id, replace the full record on
// Update, and treat Delete of an unknown id as a no-op.
type Repository interface {
	// Insert stores a new record. Returns ErrConflict if the id already exists.
	Insert(ctx context.Context, rec *ImageRecord) error
	// GetByID returns the full current record, or ErrImageNotFound.
	GetByID(ctx context.Context, id string) (*ImageRecord, error)
	// Update replaces the stored record with rec, keyed by rec.ID.
	Update(ctx context.Context, rec *ImageRecord) error
	// Delete removes the record. Deleting a non-existent id is not an error.
	Delete(ctx context.Context, id string) error
}
