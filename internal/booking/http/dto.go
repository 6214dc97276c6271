package http

import (
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/request"
)

const dateFormat = "2006-01-02"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	StaffID       string `form:"staff_id" binding:"omitempty,uuid"`
	TeamID        string `form:"team_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled no_show"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=unpaid partial paid refunded"`
	DateFrom      string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo        string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=booking_date created_at price_cents"`
}

type RecurringInfo struct {
	GroupID  string `json:"group_id"`
	Sequence int    `json:"sequence"`
	Total    int    `json:"total"`
	Pattern  string `json:"pattern"`
}

type BookingResponse struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	ServiceID     string         `json:"service_id"`
	ServiceName   string         `json:"service_name"`
	StaffID       *string        `json:"staff_id"`
	StaffName     *string        `json:"staff_name"`
	TeamID        *string        `json:"team_id"`
	TeamName      *string        `json:"team_name"`
	Date          string         `json:"date"`
	StartTime     string         `json:"start_time"`
	EndTime       string         `json:"end_time"`
	Status        string         `json:"status"`
	PricingMode   string         `json:"pricing_mode"`
	PriceCents    int64          `json:"price_cents"`
	PaymentStatus string         `json:"payment_status"`
	PaymentMethod string         `json:"payment_method"`
	PaidAt        *time.Time     `json:"paid_at"`
	Notes         string         `json:"notes"`
	Recurring     *RecurringInfo `json:"recurring"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		StaffID:       b.StaffID,
		StaffName:     b.StaffName,
		TeamID:        b.TeamID,
		TeamName:      b.TeamName,
		Date:          b.Date.Format(dateFormat),
		StartTime:     b.StartTime.Short(),
		EndTime:       b.EndTime.Short(),
		Status:        string(b.Status),
		PricingMode:   string(b.PricingMode),
		PriceCents:    b.PriceCents,
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: b.PaymentMethod,
		PaidAt:        b.PaidAt,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.RecurringGroupID != nil {
		resp.Recurring = &RecurringInfo{
			GroupID:  *b.RecurringGroupID,
			Sequence: b.RecurringSeq,
			Total:    b.RecurringTotal,
			Pattern:  b.RecurringPattern,
		}
	}
	return resp
}

type CreateBookingRequest struct {
	CustomerID  string  `json:"customer_id" binding:"required,uuid"`
	ServiceID   string  `json:"service_id" binding:"required,uuid"`
	StaffID     *string `json:"staff_id" binding:"omitempty,uuid"`
	TeamID      *string `json:"team_id" binding:"omitempty,uuid"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	PricingMode string  `json:"pricing_mode" binding:"required,oneof=package custom override"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=0"`
	Notes       string  `json:"notes"`
}

type UpdateBookingRequest struct {
	StaffID     *string `json:"staff_id" binding:"omitempty,uuid"`
	TeamID      *string `json:"team_id" binding:"omitempty,uuid"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	PricingMode string  `json:"pricing_mode" binding:"required,oneof=package custom override"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=0"`
	Notes       string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled no_show"`
}

type UpdatePaymentRequest struct {
	Status string  `json:"status" binding:"required,oneof=unpaid partial paid refunded"`
	Method string  `json:"method" binding:"omitempty,max=50"`
	PaidAt *string `json:"paid_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type CheckConflictsRequest struct {
	StaffID          *string `json:"staff_id" binding:"omitempty,uuid"`
	TeamID           *string `json:"team_id" binding:"omitempty,uuid"`
	Date             string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime        string  `json:"start_time" binding:"required"`
	EndTime          string  `json:"end_time" binding:"required"`
	ExcludeBookingID string  `json:"exclude_booking_id" binding:"omitempty,uuid"`
}

type ConflictResponse struct {
	BookingID    string `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	ServiceName  string `json:"service_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
}

type CheckConflictsResponse struct {
	HasConflicts bool               `json:"has_conflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

func NewCheckConflictsResponse(conflicts []booking.Conflict) CheckConflictsResponse {
	items := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		items[i] = ConflictResponse{
			BookingID:    c.BookingID,
			CustomerName: c.CustomerName,
			ServiceName:  c.ServiceName,
			StartTime:    c.StartTime.Short(),
			EndTime:      c.EndTime.Short(),
			Status:       string(c.Status),
		}
	}
	return CheckConflictsResponse{
		HasConflicts: len(items) > 0,
		Conflicts:    items,
	}
}

type CreateRecurringRequest struct {
	CustomerID  string  `json:"customer_id" binding:"required,uuid"`
	ServiceID   string  `json:"service_id" binding:"required,uuid"`
	StaffID     *string `json:"staff_id" binding:"omitempty,uuid"`
	TeamID      *string `json:"team_id" binding:"omitempty,uuid"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	PricingMode string  `json:"pricing_mode" binding:"required,oneof=package custom override"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=0"`
	Notes       string  `json:"notes"`

	Frequency      int      `json:"frequency" binding:"required,oneof=2 4 8"`
	Mode           string   `json:"mode" binding:"required,oneof=auto custom"`
	StartDate      *string  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	IntervalMonths int      `json:"interval_months" binding:"omitempty,min=1,max=3"`
	Dates          []string `json:"dates" binding:"omitempty,dive,datetime=2006-01-02"`
}

type RecurringGroupResponse struct {
	GroupID    string            `json:"group_id"`
	Pattern    string            `json:"pattern"`
	Total      int               `json:"total"`
	TotalCents int64             `json:"total_cents"`
	Bookings   []BookingResponse `json:"bookings"`
}

func NewRecurringGroupResponse(bookings []*booking.Booking) RecurringGroupResponse {
	resp := RecurringGroupResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}
	for i, b := range bookings {
		resp.Bookings[i] = NewBookingResponse(b)
		resp.TotalCents += b.PriceCents
	}
	if len(bookings) > 0 {
		first := bookings[0]
		if first.RecurringGroupID != nil {
			resp.GroupID = *first.RecurringGroupID
		}
		resp.Pattern = first.RecurringPattern
		resp.Total = first.RecurringTotal
	}
	return resp
}
