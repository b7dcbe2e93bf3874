package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, s.Web.Port)
	assert.Equal(t, SessionStoreCookie, s.Web.SessionStore)
	assert.Equal(t, DatabaseTypeSQLite, s.Database.Type)
	assert.Equal(t, GetDBPath(), s.Database.SQLite.Path)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cadastro.yaml")
	content := []byte("web:\n  port: 8080\n  sessionStore: redis\ndatabase:\n  sqlite:\n    path: " + filepath.Join(dir, "db.sqlite") + "\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CADASTRO_WEB_SECRETKEY", "s3cret")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, s.Web.Port)
	assert.Equal(t, SessionStoreRedis, s.Web.SessionStore)
	assert.Equal(t, "s3cret", s.Web.SecretKey)
	assert.Equal(t, filepath.Join(dir, "db.sqlite"), s.Database.SQLite.Path)
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CADASTRO_WEB_SESSIONSTORE", "memcached")

	_, err := Load("")
	assert.Error(t, err)
}

func TestDatabaseConfigDSN(t *testing.T) {
	c := &DatabaseConfig{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: "data/x.sqlite"}}
	assert.Equal(t, "data/x.sqlite?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=1", c.GetDSN())

	c.SQLite.Path = "file:x?mode=memory"
	assert.Equal(t, "file:x?mode=memory&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=1", c.GetDSN())

	m := &DatabaseConfig{Type: DatabaseTypeMySQL, MySQL: MySQLConfig{Host: "db", Port: 3306, Database: "cad", Username: "u", Password: "p"}}
	assert.Equal(t, "u:p@tcp(db:3306)/cad?charset=utf8mb4&parseTime=True&loc=Local", m.GetDSN())
	assert.NoError(t, m.ValidateConfig())

	m.MySQL.Port = 0
	assert.Error(t, m.ValidateConfig())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
