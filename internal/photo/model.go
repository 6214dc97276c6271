package photo

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "photo not found")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")
	ErrTooLarge        = apperror.New(http.StatusRequestEntityTooLarge, "photo exceeds the maximum allowed size")
	ErrUnsupportedType = apperror.New(http.StatusUnsupportedMediaType, "photo must be a JPEG or PNG image")
)

type Kind string

const (
	KindBefore Kind = "before"
	KindAfter  Kind = "after"
	KindOther  Kind = "other"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBefore, KindAfter, KindOther:
		return true
	}
	return false
}

// Photo is an image attached to a booking, documenting the state of the job
// site before or after the visit.
type Photo struct {
	ID          string
	BookingID   string
	Kind        Kind
	FileName    string
	ContentType string
	SizeBytes   int64
	Path        string
	ThumbPath   string
	Caption     string
	CreatedAt   time.Time
}
