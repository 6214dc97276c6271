package customer

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "customer not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "customer name is required")
	ErrEmailInUse   = apperror.New(http.StatusConflict, "email already belongs to another customer")
)

// Customer is a client of the business (a household or an individual).
// Customers are never hard-deleted; they are archived so historical bookings
// keep their reference.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Notes     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing customers.
type Filter struct {
	// Search matches against name, email and phone.
	Search          string
	IncludeArchived bool
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}
