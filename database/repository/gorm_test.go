package repository

import (
	"context"
	"testing"

	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/database/dbtest"
	"github.com/ifsp/cadastro/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	role, err := store.Roles.FindByName(ctx, "User")
	require.NoError(t, err)
	assert.Nil(t, role)

	require.NoError(t, store.Roles.Insert(ctx, &model.Role{Name: "User"}))

	role, err = store.Roles.FindByName(ctx, "User")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.NotZero(t, role.Id)

	ok, err := store.Roles.Exists(ctx, "User")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Roles.Exists(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok, "lookup is exact; normalization happens before it")

	err = store.Roles.Insert(ctx, &model.Role{Name: "User"})
	assert.True(t, database.IsDuplicate(err), "got %v", err)

	n, err := store.Roles.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserRepository(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	role := &model.Role{Name: "Admin"}
	require.NoError(t, store.Roles.Insert(ctx, role))

	u := &model.User{Username: "alice", Role: *role}
	require.NoError(t, store.Users.Insert(ctx, u))
	assert.NotZero(t, u.Id)
	assert.Equal(t, role.Id, u.RoleId)

	got, err := store.Users.FindByName(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Admin", got.Role.Name)

	missing, err := store.Users.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = store.Users.Insert(ctx, &model.User{Username: "alice", RoleId: role.Id})
	assert.True(t, database.IsDuplicate(err), "got %v", err)

	require.NoError(t, store.Users.Insert(ctx, &model.User{Username: "bob", RoleId: role.Id}))
	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Admin", users[1].Role.Name)

	n, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestUserRequiresExistingRole(t *testing.T) {
	store := NewStore(dbtest.Open(t))

	err := store.Users.Insert(context.Background(), &model.User{Username: "orphan", RoleId: 42})
	assert.Error(t, err)
}

func TestDisciplinaRepository(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, store.Disciplinas.Insert(ctx, &model.Disciplina{Nome: "Programação Web", Semestre: "3"}))
	require.NoError(t, store.Disciplinas.Insert(ctx, &model.Disciplina{Nome: "Algoritmos", Semestre: "1"}))

	err := store.Disciplinas.Insert(ctx, &model.Disciplina{Nome: "Programação Web", Semestre: "5"})
	assert.True(t, database.IsDuplicate(err), "got %v", err)

	d, err := store.Disciplinas.FindByName(ctx, "Programação Web")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, model.Semestre("3"), d.Semestre)

	list, err := store.Disciplinas.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Algoritmos", list[0].Nome)

	ok, err := store.Disciplinas.Exists(ctx, "Cálculo")
	require.NoError(t, err)
	assert.False(t, ok)
}
