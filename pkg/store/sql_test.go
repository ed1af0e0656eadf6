package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/goliatone/go-regform/pkg/store"
)

func TestSQLStore_SQLite(t *testing.T) {
	s, err := store.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLStore_RequiresDSN(t *testing.T) {
	if _, err := store.OpenSQLite(context.Background(), " "); !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSQLStore_WriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS regform_kv").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO regform_kv").
		WithArgs(store.KeyHistory, "[]").
		WillReturnError(errors.New("database or disk is full"))

	s, err := store.NewSQLStore(context.Background(), db)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}

	err = s.Write(context.Background(), store.KeyHistory, "[]")
	if err == nil {
		t.Fatalf("expected write failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStore_ReadMissingAndFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS regform_kv").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT value FROM regform_kv").
		WithArgs(store.KeyDraft).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectQuery("SELECT value FROM regform_kv").
		WithArgs(store.KeyDraft).
		WillReturnError(errors.New("connection reset"))

	s, err := store.NewSQLStore(context.Background(), db)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}

	if _, ok, err := s.Read(context.Background(), store.KeyDraft); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if _, _, err := s.Read(context.Background(), store.KeyDraft); err == nil {
		t.Fatalf("expected read failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStore_MigrateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS regform_kv").
		WillReturnError(errors.New("read-only database"))

	if _, err := store.NewSQLStore(context.Background(), db); err == nil {
		t.Fatalf("expected migrate failure")
	}
}
