package review

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "review not found")
	ErrInvalidRating   = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")
	ErrAlreadyReviewed = apperror.New(http.StatusConflict, "booking already has a review")
)

// Review is customer feedback left for a completed booking. A booking takes
// at most one review.
type Review struct {
	ID           string
	BookingID    string
	CustomerID   string
	CustomerName string
	ServiceName  string
	Rating       int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	CustomerID string
	MinRating  int
	Page       int
	PageSize   int
	SortOrder  string
}
