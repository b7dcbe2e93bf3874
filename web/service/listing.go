package service

import (
	"context"

	"github.com/ifsp/cadastro/database/model"
	"github.com/ifsp/cadastro/database/repository"
)

// IndexView is what the main page renders besides the session echo.
type IndexView struct {
	Users     []model.User `json:"users"`
	UserCount int64        `json:"userCount"`
	Roles     []model.Role `json:"roles"`
	RoleCount int64        `json:"roleCount"`
}

type DisciplinasView struct {
	Disciplinas []model.Disciplina `json:"disciplinas"`
	Count       int64              `json:"count"`
}

type ListingService struct {
	store *repository.Store
}

func NewListingService(store *repository.Store) *ListingService {
	return &ListingService{store: store}
}

func (s *ListingService) Index(ctx context.Context) (*IndexView, error) {
	var (
		v   IndexView
		err error
	)
	if v.Users, err = s.store.Users.List(ctx); err != nil {
		return nil, err
	}
	if v.UserCount, err = s.store.Users.Count(ctx); err != nil {
		return nil, err
	}
	if v.Roles, err = s.store.Roles.List(ctx); err != nil {
		return nil, err
	}
	if v.RoleCount, err = s.store.Roles.Count(ctx); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *ListingService) Disciplinas(ctx context.Context) (*DisciplinasView, error) {
	var (
		v   DisciplinasView
		err error
	)
	if v.Disciplinas, err = s.store.Disciplinas.List(ctx); err != nil {
		return nil, err
	}
	if v.Count, err = s.store.Disciplinas.Count(ctx); err != nil {
		return nil, err
	}
	return &v, nil
}
