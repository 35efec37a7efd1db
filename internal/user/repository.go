package user

import (
	"context"
	"encoding/json"
	"errors"

	"user-registry-backend/internal/store"
)

// Repository adapts the key-value store to typed user records. All JSON
// encoding and decoding of records happens here and nowhere else.
type Repository struct {
	store store.Store
	table string
}

func NewRepository(s store.Store, table string) *Repository {
	return &Repository{store: s, table: table}
}

func (r *Repository) GetByID(ctx context.Context, id string) (Record, error) {
	item, err := r.store.Get(ctx, r.table, id)
	if errors.Is(err, store.ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(item, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Put creates or overwrites the record under its user_id.
func (r *Repository) Put(ctx context.Context, rec Record) error {
	item, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, r.table, rec.UserID, item)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, r.table, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) List(ctx context.Context) ([]Record, error) {
	return r.scan(ctx, nil)
}

// FindByMobile expects an already-normalized number; records are stored
// normalized, so the comparison is exact.
func (r *Repository) FindByMobile(ctx context.Context, mob string) ([]Record, error) {
	return r.scan(ctx, func(rec Record) bool { return rec.MobNum == mob })
}

func (r *Repository) FindByManager(ctx context.Context, managerID string) ([]Record, error) {
	return r.scan(ctx, func(rec Record) bool { return rec.ManagerID == managerID })
}

func (r *Repository) scan(ctx context.Context, match func(Record) bool) ([]Record, error) {
	items, err := r.store.Scan(ctx, r.table, func(item []byte) bool {
		if match == nil {
			return true
		}
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return false
		}
		return match(rec)
	})
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
