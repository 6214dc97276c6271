package http

import (
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/request"
	"github.com/mellowtide/homecare-admin-backend/internal/team"
)

type ListTeamsRequest struct {
	request.ListParams
	Search string `form:"search"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

type MemberResponse struct {
	StaffID   string    `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	AddedAt   time.Time `json:"added_at"`
}

type TeamResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewTeamResponse(t *team.Team) TeamResponse {
	members := make([]MemberResponse, len(t.Members))
	for i, m := range t.Members {
		members[i] = MemberResponse{
			StaffID:   m.StaffID,
			StaffName: m.StaffName,
			AddedAt:   m.AddedAt,
		}
	}
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Members:     members,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

type MemberRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
}
