package catalog

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name            string
	Description     string
	Category        Category
	BasePriceCents  int64
	DurationMinutes int
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	Category        *Category
	BasePriceCents  *int64
	DurationMinutes *int
	Active          *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Item, error)
	Retire(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !req.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if req.BasePriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	item := &Item{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		BasePriceCents:  req.BasePriceCents,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		item.Category = *req.Category
	}
	if req.BasePriceCents != nil {
		if *req.BasePriceCents < 0 {
			return nil, ErrInvalidPrice
		}
		item.BasePriceCents = *req.BasePriceCents
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Retire marks an item inactive. Bookings referencing it are untouched.
func (s *service) Retire(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	item.Active = false
	return s.repo.Update(ctx, item)
}
