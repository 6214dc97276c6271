package http

import (
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/request"
	"github.com/mellowtide/homecare-admin-backend/internal/staff"
)

type ListStaffRequest struct {
	request.ListParams
	Search     string `form:"search"`
	Role       string `form:"role" binding:"omitempty,oneof=cleaner trainer admin"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name role created_at"`
}

type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStaffResponse(m *staff.Member) StaffResponse {
	return StaffResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Role:      string(m.Role),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// StaffTag is the short embedded form used by other modules' responses.
type StaffTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
	Role  string `json:"role" binding:"required,oneof=cleaner trainer admin"`
}

type UpdateStaffRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone" binding:"omitempty,max=30"`
	Role   *string `json:"role" binding:"omitempty,oneof=cleaner trainer admin"`
	Active *bool   `json:"active"`
}
