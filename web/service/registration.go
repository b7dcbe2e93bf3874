// Package service implements the registration workflow and the read-only
// projections rendered by the controllers.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/database/model"
	"github.com/ifsp/cadastro/database/repository"
	"github.com/ifsp/cadastro/logger"
	"github.com/ifsp/cadastro/web/entity"
	"github.com/ifsp/cadastro/web/session"
)

// ErrDuplicateDisciplina is returned when a discipline nome is already taken.
var ErrDuplicateDisciplina = errors.New("disciplina already registered")

// RegistrationContext carries a single request through the workflow. The
// workflow updates Session; the caller persists it afterwards.
type RegistrationContext struct {
	Ctx     context.Context
	Store   *repository.Store
	Session session.State
}

func NewRegistrationContext(ctx context.Context, store *repository.Store, st session.State) *RegistrationContext {
	return &RegistrationContext{Ctx: ctx, Store: store, Session: st}
}

// UserResult reports what RegisterUser did.
type UserResult struct {
	User        *model.User
	Created     bool
	RoleCreated bool
}

type RegistrationService struct{}

// RegisterUser finds the user by exact username or creates it together with
// its role. The session remembers the submitted name and whether it was
// already known.
func (s *RegistrationService) RegisterUser(rc *RegistrationContext, in entity.NameForm) (*UserResult, error) {
	in.Normalize()

	user, err := rc.Store.Users.FindByName(rc.Ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if user != nil {
		rc.Session = session.State{Name: in.Name, Known: true}
		return &UserResult{User: user}, nil
	}

	role, roleCreated, err := s.findOrCreateRole(rc, model.NormalizeRoleName(in.Role))
	if err != nil {
		return nil, err
	}

	user = &model.User{Username: in.Name, RoleId: role.Id, Role: *role}
	if err := rc.Store.Users.Insert(rc.Ctx, user); err != nil {
		if !database.IsDuplicate(err) {
			return nil, err
		}
		// Lost the race against a concurrent submission of the same name.
		existing, ferr := rc.Store.Users.FindByName(rc.Ctx, in.Name)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, err
		}
		logger.Infof("user %q was registered concurrently", in.Name)
		rc.Session = session.State{Name: in.Name, Known: true}
		return &UserResult{User: existing, RoleCreated: roleCreated}, nil
	}

	logger.Infof("registered user %q with role %q", user.Username, role.Name)
	rc.Session = session.State{Name: in.Name, Known: false}
	return &UserResult{User: user, Created: true, RoleCreated: roleCreated}, nil
}

func (s *RegistrationService) findOrCreateRole(rc *RegistrationContext, name string) (*model.Role, bool, error) {
	role, err := rc.Store.Roles.FindByName(rc.Ctx, name)
	if err != nil {
		return nil, false, err
	}
	if role != nil {
		return role, false, nil
	}

	role = &model.Role{Name: name}
	err = rc.Store.Roles.Insert(rc.Ctx, role)
	if err == nil {
		logger.Infof("created role %q", name)
		return role, true, nil
	}
	if !database.IsDuplicate(err) {
		return nil, false, err
	}

	role, ferr := rc.Store.Roles.FindByName(rc.Ctx, name)
	if ferr != nil {
		return nil, false, ferr
	}
	if role == nil {
		return nil, false, err
	}
	return role, false, nil
}

// RegisterDisciplina inserts the discipline unconditionally. A taken nome
// fails with ErrDuplicateDisciplina and leaves the stored row untouched.
func (s *RegistrationService) RegisterDisciplina(rc *RegistrationContext, in entity.DisciplinaForm) (*model.Disciplina, error) {
	in.Normalize()

	d := &model.Disciplina{Nome: in.Nome, Semestre: model.Semestre(in.Semestre)}
	if !d.Semestre.Valid() {
		return nil, fmt.Errorf("invalid semestre %q", in.Semestre)
	}
	if err := rc.Store.Disciplinas.Insert(rc.Ctx, d); err != nil {
		if database.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateDisciplina, err)
		}
		return nil, err
	}
	logger.Infof("registered disciplina %q (%s)", d.Nome, d.Semestre.Label())
	return d, nil
}
