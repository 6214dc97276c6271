package catalog

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "service name is required")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid service category")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "base price must not be negative")
)

type Category string

const (
	CategoryCleaning Category = "cleaning"
	CategoryTraining Category = "training"
)

func (c Category) Valid() bool {
	return c == CategoryCleaning || c == CategoryTraining
}

// Item is an offered service (e.g. "Deep Clean", "Puppy Basics"). The base
// price feeds bookings in package pricing mode; custom and override modes
// supply their own price at booking time.
type Item struct {
	ID              string
	Name            string
	Description     string
	Category        Category
	BasePriceCents  int64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing catalog items.
type Filter struct {
	Category   string
	ActiveOnly bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
