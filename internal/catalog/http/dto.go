package http

import (
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/catalog"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/request"
)

type ListServicesRequest struct {
	request.ListParams
	Category   string `form:"category" binding:"omitempty,oneof=cleaning training"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name category base_price_cents created_at"`
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	BasePriceCents  int64     `json:"base_price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceResponse(item *catalog.Item) ServiceResponse {
	return ServiceResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Category:        string(item.Category),
		BasePriceCents:  item.BasePriceCents,
		DurationMinutes: item.DurationMinutes,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Description     string `json:"description"`
	Category        string `json:"category" binding:"required,oneof=cleaning training"`
	BasePriceCents  int64  `json:"base_price_cents" binding:"omitempty,min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description"`
	Category        *string `json:"category" binding:"omitempty,oneof=cleaning training"`
	BasePriceCents  *int64  `json:"base_price_cents" binding:"omitempty,min=0"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=0"`
	Active          *bool   `json:"active"`
}
