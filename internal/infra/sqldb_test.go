package infra

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewSQLDB_SQLite(t *testing.T) {
	db, err := NewSQLDB(context.Background(), "sqlite", filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("NewSQLDB() error = %v", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1 = %d, %v", one, err)
	}
}

func TestNewSQLDB_UnknownDriver(t *testing.T) {
	if _, err := NewSQLDB(context.Background(), "oracle", "x"); err == nil {
		t.Fatal("expected error for unregistered driver")
	}
}
