package booking

import (
	"net/http"
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrGroupNotFound     = apperror.New(http.StatusNotFound, "recurring group not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "assignee already has a booking in this time range")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidPayment    = apperror.New(http.StatusBadRequest, "invalid payment status")
	ErrBothAssignees     = apperror.New(http.StatusBadRequest, "booking may be assigned to a staff member or a team, not both")
	ErrDatePast          = apperror.New(http.StatusBadRequest, "booking date cannot be in the past")
	ErrCustomerNotFound  = apperror.New(http.StatusNotFound, "customer not found")
	ErrServiceNotFound   = apperror.New(http.StatusNotFound, "service not found")
	ErrStaffNotFound     = apperror.New(http.StatusNotFound, "staff member not found")
	ErrTeamNotFound      = apperror.New(http.StatusNotFound, "team not found")
	ErrPriceRequired     = apperror.New(http.StatusBadRequest, "price is required for this pricing mode")
	ErrNotRecurring      = apperror.New(http.StatusBadRequest, "booking is not part of a recurring group")
	ErrInvalidFrequency  = apperror.New(http.StatusBadRequest, "recurring frequency must be 2, 4 or 8")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "recurring interval must be 1, 2 or 3 months")
	ErrPatternStartDate  = apperror.New(http.StatusBadRequest, "start date is required for auto-generated recurring dates")
	ErrCancelledTerminal = apperror.New(http.StatusBadRequest, "cancelled bookings cannot change status")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal statuses no longer occupy the assignee's time and are skipped by
// conflict detection.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusNoShow
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// PricingMode says where a booking's price comes from: the catalog item's
// fixed package price, a custom quote for the job, or a manual override of
// the package price.
type PricingMode string

const (
	PricingPackage  PricingMode = "package"
	PricingCustom   PricingMode = "custom"
	PricingOverride PricingMode = "override"
)

func (m PricingMode) Valid() bool {
	switch m {
	case PricingPackage, PricingCustom, PricingOverride:
		return true
	}
	return false
}

// Booking is a scheduled job for a customer on a given date and time range,
// assigned to at most one of staff member or team. Bookings created together
// as a recurring series share a RecurringGroupID.
type Booking struct {
	ID           string
	CustomerID   string
	CustomerName string
	ServiceID    string
	ServiceName  string

	// Assignee: StaffID XOR TeamID, or neither (unassigned).
	StaffID   *string
	StaffName *string
	TeamID    *string
	TeamName  *string

	Date      time.Time // date only, midnight UTC
	StartTime TimeOfDay
	EndTime   TimeOfDay

	Status        Status
	PricingMode   PricingMode
	PriceCents    int64
	PaymentStatus PaymentStatus
	PaymentMethod string
	PaidAt        *time.Time
	Notes         string

	RecurringGroupID *string
	RecurringSeq     int
	RecurringTotal   int
	RecurringPattern string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assigned reports whether the booking has a staff or team assignee.
func (b *Booking) Assigned() bool {
	return b.StaffID != nil || b.TeamID != nil
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CustomerID    string
	StaffID       string
	TeamID        string
	Status        string
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
