package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	p := NewPostgres(db)

	rows := sqlmock.NewRows([]string{"item"}).AddRow([]byte(`{"user_id":"u1"}`))
	mock.ExpectQuery("SELECT item FROM records").WithArgs("users", "u1").WillReturnRows(rows)

	item, err := p.Get(context.Background(), "users", "u1")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if string(item) != `{"user_id":"u1"}` {
		t.Fatalf("unexpected item %s", item)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	p := NewPostgres(db)

	mock.ExpectQuery("SELECT item FROM records").WithArgs("users", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"item"}))

	if _, err := p.Get(context.Background(), "users", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	p := NewPostgres(db)

	mock.ExpectExec("INSERT INTO records").WithArgs("users", "u1", []byte(`{"a":1}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := p.Put(context.Background(), "users", "u1", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	p := NewPostgres(db)

	mock.ExpectExec("DELETE FROM records").WithArgs("users", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM records").WithArgs("users", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := p.Delete(context.Background(), "users", "u1"); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := p.Delete(context.Background(), "users", "u1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	p := NewPostgres(db)

	rows := sqlmock.NewRows([]string{"item"}).
		AddRow([]byte(`alpha`)).
		AddRow([]byte(`beta`))
	mock.ExpectQuery("SELECT item FROM records").WithArgs("users").WillReturnRows(rows)

	items, err := p.Scan(context.Background(), "users", func(item []byte) bool {
		return string(item) == "beta"
	})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(items) != 1 || string(items[0]) != "beta" {
		t.Fatalf("unexpected items %v", items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
