package store

import (
	"context"
	"database/sql"
)

// Postgres keeps every logical table in a single records relation keyed by
// (table_name, item_key), with the item itself as a jsonb document.
type Postgres struct {
	db *sql.DB
}

const (
	createRecordsTableQuery = `
		CREATE TABLE IF NOT EXISTS records (
			table_name TEXT NOT NULL,
			item_key TEXT NOT NULL,
			item JSONB NOT NULL,
			PRIMARY KEY (table_name, item_key)
		)
	`
	getItemQuery = `SELECT item FROM records WHERE table_name = $1 AND item_key = $2`
	putItemQuery = `
		INSERT INTO records (table_name, item_key, item)
		VALUES ($1, $2, $3)
		ON CONFLICT (table_name, item_key) DO UPDATE SET item = EXCLUDED.item
	`
	deleteItemQuery = `DELETE FROM records WHERE table_name = $1 AND item_key = $2`
	scanItemsQuery  = `SELECT item FROM records WHERE table_name = $1`
)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the records relation when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, createRecordsTableQuery)
	return err
}

func (p *Postgres) Get(ctx context.Context, table, key string) ([]byte, error) {
	var item []byte
	err := p.db.QueryRowContext(ctx, getItemQuery, table, key).Scan(&item)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (p *Postgres) Put(ctx context.Context, table, key string, item []byte) error {
	_, err := p.db.ExecContext(ctx, putItemQuery, table, key, item)
	return err
}

func (p *Postgres) Delete(ctx context.Context, table, key string) error {
	result, err := p.db.ExecContext(ctx, deleteItemQuery, table, key)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Scan(ctx context.Context, table string, match func(item []byte) bool) ([][]byte, error) {
	rows, err := p.db.QueryContext(ctx, scanItemsQuery, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([][]byte, 0)
	for rows.Next() {
		var item []byte
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		if match != nil && !match(item) {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
