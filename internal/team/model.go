package team

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "team not found")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "team name is required")
	ErrAlreadyMember = apperror.New(http.StatusConflict, "staff member already on this team")
	ErrNotMember     = apperror.New(http.StatusNotFound, "staff member is not on this team")
	ErrStaffNotFound = apperror.New(http.StatusNotFound, "staff member not found")
)

// Team is a named group of staff that can be assigned to a booking as a unit.
type Team struct {
	ID          string
	Name        string
	Description string
	Members     []Member
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a staff member's membership on a team.
type Member struct {
	StaffID   string
	StaffName string
	AddedAt   time.Time
}

// Filter defines parameters for listing teams.
type Filter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
