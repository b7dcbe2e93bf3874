// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/database"

	"gorm.io/gorm"
)

// Open initializes the package-level database on a fresh file under
// t.TempDir and closes it when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.sqlite")},
	}
	if err := database.InitDB(cfg); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = database.CloseDB() })
	return database.GetDB()
}
