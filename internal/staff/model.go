package staff

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "staff member not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "staff name is required")
	ErrInvalidRole  = apperror.New(http.StatusBadRequest, "invalid staff role")
)

// Role is a display label for what a staff member does. It carries no
// authorization semantics.
type Role string

const (
	RoleCleaner Role = "cleaner"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCleaner, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Member is an individual staff member who can be assigned to bookings,
// either directly or through a team.
type Member struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing staff members.
type Filter struct {
	Search     string
	Role       string
	ActiveOnly bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
