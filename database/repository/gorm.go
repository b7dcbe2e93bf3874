package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ifsp/cadastro/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepository{db: db} }

// FindByName returns nil without error when no role carries the name.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find role %q: %w", name, err)
	}
	return &role, nil
}

func (r *roleRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Role{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *roleRepository) Insert(ctx context.Context, role *model.Role) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(role).Error; err != nil {
		return fmt.Errorf("insert role %q: %w", role.Name, err)
	}
	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Role{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

// FindByName matches the username exactly and preloads the role.
func (r *userRepository) FindByName(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Insert(ctx context.Context, u *model.User) error {
	if u.RoleId == 0 {
		u.RoleId = u.Role.Id
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Role").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type disciplinaRepository struct{ db *gorm.DB }

func NewDisciplinaRepository(db *gorm.DB) DisciplinaRepository {
	return &disciplinaRepository{db: db}
}

func (r *disciplinaRepository) FindByName(ctx context.Context, nome string) (*model.Disciplina, error) {
	var d model.Disciplina
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find disciplina %q: %w", nome, err)
	}
	return &d, nil
}

func (r *disciplinaRepository) Exists(ctx context.Context, nome string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Disciplina{}).Where("nome = ?", nome).Count(&count).Error
	return count > 0, err
}

func (r *disciplinaRepository) Insert(ctx context.Context, d *model.Disciplina) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("insert disciplina %q: %w", d.Nome, err)
	}
	return nil
}

func (r *disciplinaRepository) List(ctx context.Context) ([]model.Disciplina, error) {
	var out []model.Disciplina
	if err := r.db.WithContext(ctx).Order("semestre ASC, nome ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *disciplinaRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Disciplina{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
