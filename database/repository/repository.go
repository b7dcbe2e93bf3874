// Package repository exposes the registration entities through per-kind
// repositories keyed by their natural key.
package repository

import (
	"context"

	"github.com/ifsp/cadastro/database/model"

	"gorm.io/gorm"
)

// RoleRepository looks roles up by their normalized name.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	Exists(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, role *model.Role) error
	List(ctx context.Context) ([]model.Role, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository looks users up by username.
type UserRepository interface {
	FindByName(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// DisciplinaRepository looks disciplines up by nome.
type DisciplinaRepository interface {
	FindByName(ctx context.Context, nome string) (*model.Disciplina, error)
	Exists(ctx context.Context, nome string) (bool, error)
	Insert(ctx context.Context, d *model.Disciplina) error
	List(ctx context.Context) ([]model.Disciplina, error)
	Count(ctx context.Context) (int64, error)
}

// Store bundles the repositories that share one database handle.
type Store struct {
	Roles       RoleRepository
	Users       UserRepository
	Disciplinas DisciplinaRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Roles:       NewRoleRepository(db),
		Users:       NewUserRepository(db),
		Disciplinas: NewDisciplinaRepository(db),
	}
}
