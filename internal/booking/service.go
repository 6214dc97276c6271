package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mellowtide/homecare-admin-backend/internal/catalog"
	"github.com/mellowtide/homecare-admin-backend/internal/customer"
	"github.com/mellowtide/homecare-admin-backend/internal/staff"
	"github.com/mellowtide/homecare-admin-backend/internal/team"
)

// DateValidationError reports why a recurring date selection was rejected.
// Handlers unwrap it to return the individual messages to the client.
type DateValidationError struct {
	Messages []string
}

func (e *DateValidationError) Error() string {
	return "invalid recurring dates: " + strings.Join(e.Messages, "; ")
}

type CreateRequest struct {
	CustomerID  string
	ServiceID   string
	StaffID     *string
	TeamID      *string
	Date        time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	PricingMode PricingMode
	PriceCents  *int64
	Notes       string
}

type UpdateRequest struct {
	StaffID     *string
	TeamID      *string
	Date        time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	PricingMode PricingMode
	PriceCents  *int64
	Notes       string
}

type PaymentRequest struct {
	Status PaymentStatus
	Method string
	PaidAt *time.Time
}

// RecurringRequest describes a recurring series: the shared booking shape
// plus the date pattern. For custom and override pricing, PriceCents is the
// total for the whole series and is split across the occurrences.
type RecurringRequest struct {
	CustomerID  string
	ServiceID   string
	StaffID     *string
	TeamID      *string
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	PricingMode PricingMode
	PriceCents  *int64
	Notes       string

	Frequency      int
	Mode           PatternMode
	StartDate      *time.Time
	IntervalMonths int
	Dates          []time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	UpdatePayment(ctx context.Context, id string, req PaymentRequest) (*Booking, error)
	Cancel(ctx context.Context, id string) error

	// CheckConflicts returns the existing bookings that overlap the
	// candidate's time range for the same assignee and date.
	CheckConflicts(ctx context.Context, cand ConflictCandidate) ([]Conflict, error)

	CreateRecurringGroup(ctx context.Context, req RecurringRequest) ([]*Booking, error)
	GetRecurringGroup(ctx context.Context, groupID string) ([]*Booking, error)
}

type service struct {
	repo      Repository
	customers customer.Service
	staffs    staff.Service
	teams     team.Service
	catalog   catalog.Service
	logger    *zap.Logger

	now func() time.Time
}

func NewService(
	repo Repository,
	customers customer.Service,
	staffs staff.Service,
	teams team.Service,
	catalogSvc catalog.Service,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		customers: customers,
		staffs:    staffs,
		teams:     teams,
		catalog:   catalogSvc,
		logger:    logger,
		now:       time.Now,
	}
}

func validateAssignee(staffID, teamID *string) error {
	if staffID != nil && teamID != nil {
		return ErrBothAssignees
	}
	return nil
}

func validateTimeRange(start, end TimeOfDay) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// checkReferences verifies the customer, service and assignee all exist,
// mapping each miss to a booking-level sentinel.
func (s *service) checkReferences(ctx context.Context, customerID, serviceID string, staffID, teamID *string) (*catalog.Item, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if err == customer.ErrNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	item, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if err == catalog.ErrNotFound {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if staffID != nil {
		if _, err := s.staffs.GetByID(ctx, *staffID); err != nil {
			if err == staff.ErrNotFound {
				return nil, ErrStaffNotFound
			}
			return nil, err
		}
	}
	if teamID != nil {
		if _, err := s.teams.GetByID(ctx, *teamID); err != nil {
			if err == team.ErrNotFound {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}

	return item, nil
}

// resolvePrice picks the occurrence price for a single booking. Package
// bookings take the catalog price; custom and override require an explicit
// price.
func resolvePrice(mode PricingMode, priceCents *int64, item *catalog.Item) (int64, error) {
	if !mode.Valid() {
		return 0, ErrPriceRequired
	}
	if mode == PricingPackage {
		return item.BasePriceCents, nil
	}
	if priceCents == nil || *priceCents < 0 {
		return 0, ErrPriceRequired
	}
	return *priceCents, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateAssignee(req.StaffID, req.TeamID); err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	today := DateOnly(s.now())
	date := DateOnly(req.Date)
	if date.Before(today) {
		return nil, ErrDatePast
	}

	item, err := s.checkReferences(ctx, req.CustomerID, req.ServiceID, req.StaffID, req.TeamID)
	if err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.PricingMode, req.PriceCents, item)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.CheckConflicts(ctx, ConflictCandidate{
		StaffID:   req.StaffID,
		TeamID:    req.TeamID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.logger.Info("booking rejected on conflict",
			zap.Time("date", date),
			zap.Int("conflicts", len(conflicts)))
		return nil, ErrTimeConflict
	}

	b := &Booking{
		CustomerID:    req.CustomerID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		TeamID:        req.TeamID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        StatusPending,
		PricingMode:   req.PricingMode,
		PriceCents:    price,
		PaymentStatus: PaymentUnpaid,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	if err := validateAssignee(req.StaffID, req.TeamID); err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := s.checkReferences(ctx, b.CustomerID, b.ServiceID, req.StaffID, req.TeamID)
	if err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.PricingMode, req.PriceCents, item)
	if err != nil {
		return nil, err
	}

	date := DateOnly(req.Date)

	// The edited booking is excluded from the conflict scan so it does not
	// collide with its own previous time range.
	conflicts, err := s.CheckConflicts(ctx, ConflictCandidate{
		StaffID:          req.StaffID,
		TeamID:           req.TeamID,
		Date:             date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ExcludeBookingID: id,
	})
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrTimeConflict
	}

	b.StaffID = req.StaffID
	b.TeamID = req.TeamID
	b.Date = date
	b.StartTime = req.StartTime
	b.EndTime = req.EndTime
	b.PricingMode = req.PricingMode
	b.PriceCents = price
	b.Notes = req.Notes

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return nil, ErrCancelledTerminal
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdatePayment(ctx context.Context, id string, req PaymentRequest) (*Booking, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidPayment
	}

	paidAt := req.PaidAt
	if req.Status == PaymentPaid && paidAt == nil {
		now := s.now()
		paidAt = &now
	}

	if err := s.repo.UpdatePayment(ctx, id, req.Status, req.Method, paidAt); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCancelled {
		return nil
	}
	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

func (s *service) CheckConflicts(ctx context.Context, cand ConflictCandidate) ([]Conflict, error) {
	if err := validateAssignee(cand.StaffID, cand.TeamID); err != nil {
		return nil, err
	}
	if err := validateTimeRange(cand.StartTime, cand.EndTime); err != nil {
		return nil, err
	}
	if cand.StaffID == nil && cand.TeamID == nil {
		return nil, nil
	}

	existing, err := s.repo.ListForAssignee(ctx, cand.StaffID, cand.TeamID, DateOnly(cand.Date), cand.ExcludeBookingID)
	if err != nil {
		// Fail closed: an unanswered conflict scan must block the write, not
		// let a double booking through.
		s.logger.Error("conflict scan failed", zap.Error(err))
		return nil, fmt.Errorf("conflict scan failed: %w", err)
	}

	return FindOverlapping(cand, existing), nil
}

func (s *service) CreateRecurringGroup(ctx context.Context, req RecurringRequest) ([]*Booking, error) {
	if err := validateAssignee(req.StaffID, req.TeamID); err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	switch req.Frequency {
	case 2, 4, 8:
	default:
		return nil, ErrInvalidFrequency
	}

	var pattern Pattern
	switch req.Mode {
	case ModeAuto:
		if req.IntervalMonths < 1 || req.IntervalMonths > 3 {
			return nil, ErrInvalidInterval
		}
		if req.StartDate == nil {
			return nil, ErrPatternStartDate
		}
		pattern = AutoPattern(DateOnly(*req.StartDate), req.IntervalMonths)
	case ModeCustom:
		pattern = CustomPattern(req.Dates)
	default:
		return nil, ErrPatternStartDate
	}

	today := DateOnly(s.now())
	dates, result := ResolveDates(pattern, req.Frequency, today)
	if !result.Valid {
		return nil, &DateValidationError{Messages: result.Errors}
	}

	item, err := s.checkReferences(ctx, req.CustomerID, req.ServiceID, req.StaffID, req.TeamID)
	if err != nil {
		return nil, err
	}

	// Every occurrence is conflict-checked before anything is written.
	for _, date := range dates {
		conflicts, err := s.CheckConflicts(ctx, ConflictCandidate{
			StaffID:   req.StaffID,
			TeamID:    req.TeamID,
			Date:      date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			s.logger.Info("recurring group rejected on conflict",
				zap.Time("date", date),
				zap.Int("conflicts", len(conflicts)))
			return nil, ErrTimeConflict
		}
	}

	prices, err := splitPrice(req.PricingMode, req.PriceCents, item, len(dates))
	if err != nil {
		return nil, err
	}

	groupID := uuid.New().String()
	tag := pattern.Tag()

	bookings := make([]*Booking, 0, len(dates))
	for i, date := range dates {
		bookings = append(bookings, &Booking{
			CustomerID:       req.CustomerID,
			ServiceID:        req.ServiceID,
			StaffID:          req.StaffID,
			TeamID:           req.TeamID,
			Date:             date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Status:           StatusPending,
			PricingMode:      req.PricingMode,
			PriceCents:       prices[i],
			PaymentStatus:    PaymentUnpaid,
			Notes:            req.Notes,
			RecurringGroupID: &groupID,
			RecurringSeq:     i + 1,
			RecurringTotal:   len(dates),
			RecurringPattern: tag,
		})
	}

	if err := s.repo.CreateGroup(ctx, bookings); err != nil {
		return nil, err
	}

	s.logger.Info("recurring group created",
		zap.String("group_id", groupID),
		zap.String("pattern", tag),
		zap.Int("occurrences", len(bookings)))

	return s.repo.ListGroup(ctx, groupID)
}

func (s *service) GetRecurringGroup(ctx context.Context, groupID string) ([]*Booking, error) {
	return s.repo.ListGroup(ctx, groupID)
}

// splitPrice divides the series total evenly across occurrences; any cent
// remainder lands on the first occurrence. Package pricing charges the
// catalog price per occurrence instead.
func splitPrice(mode PricingMode, totalCents *int64, item *catalog.Item, count int) ([]int64, error) {
	prices := make([]int64, count)

	if mode == PricingPackage {
		for i := range prices {
			prices[i] = item.BasePriceCents
		}
		return prices, nil
	}

	if !mode.Valid() || totalCents == nil || *totalCents < 0 {
		return nil, ErrPriceRequired
	}

	per := *totalCents / int64(count)
	remainder := *totalCents % int64(count)
	for i := range prices {
		prices[i] = per
	}
	prices[0] += remainder
	return prices, nil
}
