package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/request"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// mustDate parses a date already validated by the datetime binding tag.
func mustDate(s string) time.Time {
	t, _ := time.Parse(dateFormat, s)
	return t
}

// respondConflict sends a 409 carrying the overlapping bookings so the client
// can show the conflict dialog without a second round trip. The follow-up scan
// is best effort; if it fails the 409 goes out with an empty list.
func (h *Handler) respondConflict(c *gin.Context, cand booking.ConflictCandidate) {
	conflicts, err := h.service.CheckConflicts(c.Request.Context(), cand)
	if err != nil {
		conflicts = nil
	}
	body := NewCheckConflictsResponse(conflicts)
	c.JSON(http.StatusConflict, gin.H{
		"error":     "assignee already has a booking in this time range",
		"conflicts": body.Conflicts,
	})
}

func parseTimeRange(c *gin.Context, start, end string) (booking.TimeOfDay, booking.TimeOfDay, bool) {
	startTime, err := booking.ParseTimeOfDay(start)
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	endTime, err := booking.ParseTimeOfDay(end)
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return startTime, endTime, true
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := booking.Filter{
		CustomerID:    req.CustomerID,
		StaffID:       req.StaffID,
		TeamID:        req.TeamID,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Page:          req.Page,
		PageSize:      req.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     strings.ToUpper(req.SortOrder),
	}
	if req.DateFrom != "" {
		from := mustDate(req.DateFrom)
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to := mustDate(req.DateTo)
		filter.DateTo = &to
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startTime, endTime, ok := parseTimeRange(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		CustomerID:  body.CustomerID,
		ServiceID:   body.ServiceID,
		StaffID:     body.StaffID,
		TeamID:      body.TeamID,
		Date:        mustDate(body.Date),
		StartTime:   startTime,
		EndTime:     endTime,
		PricingMode: booking.PricingMode(body.PricingMode),
		PriceCents:  body.PriceCents,
		Notes:       body.Notes,
	})
	if err != nil {
		if errors.Is(err, booking.ErrTimeConflict) {
			h.respondConflict(c, booking.ConflictCandidate{
				StaffID:   body.StaffID,
				TeamID:    body.TeamID,
				Date:      mustDate(body.Date),
				StartTime: startTime,
				EndTime:   endTime,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startTime, endTime, ok := parseTimeRange(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		StaffID:     body.StaffID,
		TeamID:      body.TeamID,
		Date:        mustDate(body.Date),
		StartTime:   startTime,
		EndTime:     endTime,
		PricingMode: booking.PricingMode(body.PricingMode),
		PriceCents:  body.PriceCents,
		Notes:       body.Notes,
	})
	if err != nil {
		if errors.Is(err, booking.ErrTimeConflict) {
			h.respondConflict(c, booking.ConflictCandidate{
				StaffID:          body.StaffID,
				TeamID:           body.TeamID,
				Date:             mustDate(body.Date),
				StartTime:        startTime,
				EndTime:          endTime,
				ExcludeBookingID: uri.ID,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.PaymentRequest{
		Status: booking.PaymentStatus(body.Status),
		Method: body.Method,
	}
	if body.PaidAt != nil {
		paidAt, err := time.Parse(time.RFC3339, *body.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid_at timestamp"})
			return
		}
		req.PaidAt = &paidAt
	}

	b, err := h.service.UpdatePayment(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckConflicts(c *gin.Context) {
	var body CheckConflictsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startTime, endTime, ok := parseTimeRange(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	conflicts, err := h.service.CheckConflicts(c.Request.Context(), booking.ConflictCandidate{
		StaffID:          body.StaffID,
		TeamID:           body.TeamID,
		Date:             mustDate(body.Date),
		StartTime:        startTime,
		EndTime:          endTime,
		ExcludeBookingID: body.ExcludeBookingID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCheckConflictsResponse(conflicts))
}

func (h *Handler) CreateRecurring(c *gin.Context) {
	var body CreateRecurringRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startTime, endTime, ok := parseTimeRange(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	req := booking.RecurringRequest{
		CustomerID:     body.CustomerID,
		ServiceID:      body.ServiceID,
		StaffID:        body.StaffID,
		TeamID:         body.TeamID,
		StartTime:      startTime,
		EndTime:        endTime,
		PricingMode:    booking.PricingMode(body.PricingMode),
		PriceCents:     body.PriceCents,
		Notes:          body.Notes,
		Frequency:      body.Frequency,
		Mode:           booking.PatternMode(body.Mode),
		IntervalMonths: body.IntervalMonths,
	}
	if body.StartDate != nil {
		startDate := mustDate(*body.StartDate)
		req.StartDate = &startDate
	}
	for _, d := range body.Dates {
		req.Dates = append(req.Dates, mustDate(d))
	}

	bookings, err := h.service.CreateRecurringGroup(c.Request.Context(), req)
	if err != nil {
		var dateErr *booking.DateValidationError
		if errors.As(err, &dateErr) {
			response.ValidationError(c, dateErr.Messages)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRecurringGroupResponse(bookings))
}

func (h *Handler) GetRecurringGroup(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	bookings, err := h.service.GetRecurringGroup(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRecurringGroupResponse(bookings))
}
