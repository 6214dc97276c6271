package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var ErrInvalidTime = apperror.New(http.StatusBadRequest, "time must be in HH:MM or HH:MM:SS format")

// TimeOfDay is a clock time within a booking's date, stored as minutes from
// midnight. Seconds in the input are accepted for compatibility with TIME
// columns but truncated; scheduling granularity is one minute.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". The whole input must match;
// stray characters or padding anywhere make it invalid.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var layout string
	switch len(s) {
	case 5:
		layout = "15:04"
	case 8:
		layout = "15:04:05"
	default:
		return 0, ErrInvalidTime
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// String renders the time as HH:MM:SS, matching Postgres TIME text output.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}

// Short renders the time as HH:MM for API payloads.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that only touch at a boundary (one ends
// exactly where the other starts) do NOT overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}
