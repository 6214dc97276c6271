package team

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Team, error)
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, filter Filter) ([]*Team, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Team, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, teamID, staffID string) error
	RemoveMember(ctx context.Context, teamID, staffID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Team, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	t := &Team{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Team, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Team, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Team, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddMember(ctx context.Context, teamID, staffID string) error {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, teamID, staffID)
}

func (s *service) RemoveMember(ctx context.Context, teamID, staffID string) error {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, teamID, staffID)
}
