package manager

import (
	"context"
	"errors"

	"user-registry-backend/internal/store"
)

// Repository reads the managers table. Manager records are owned by another
// system; this service only ever checks that a referenced key exists.
type Repository struct {
	store store.Store
	table string
}

func NewRepository(s store.Store, table string) *Repository {
	return &Repository{store: s, table: table}
}

// Exists reports whether a manager record is present under the given key.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.store.Get(ctx, r.table, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
