package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/database/model"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cadastro.yaml")
	content := "database:\n  type: sqlite\n  sqlite:\n    path: " + filepath.Join(dir, "cadastro.sqlite") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "cadastro 1.0.0\n", execute(t, "version"))
}

func TestShowCommand(t *testing.T) {
	path := writeConfig(t)
	execute(t, "migrate", "--config", path)

	settings, err := openDB()
	require.NoError(t, err)
	db := database.GetDB()
	role := model.Role{Name: "Admin"}
	require.NoError(t, db.Create(&role).Error)
	require.NoError(t, db.Create(&model.User{Username: "Alice", RoleId: role.Id}).Error)
	require.NoError(t, db.Create(&model.Disciplina{Nome: "Redes", Semestre: "4"}).Error)
	require.NoError(t, database.CloseDB())
	assert.Equal(t, "sqlite", string(settings.Database.Type))

	text := execute(t, "show", "--config", path)
	assert.Contains(t, text, "users (1)")
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "4º semestre")

	var snap registrySnapshot
	require.NoError(t, json.Unmarshal([]byte(execute(t, "show", "--json", "--config", path)), &snap))
	assert.EqualValues(t, 1, snap.Index.UserCount)
	assert.Equal(t, "Admin", snap.Index.Users[0].Role.Name)
	assert.EqualValues(t, 1, snap.Disciplinas.Count)
}
