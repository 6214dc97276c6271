package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mellowtide/homecare-admin-backend/internal/catalog"
	"github.com/mellowtide/homecare-admin-backend/internal/customer"
	"github.com/mellowtide/homecare-admin-backend/internal/staff"
	"github.com/mellowtide/homecare-admin-backend/internal/team"
)

// stubRepo is an in-memory Repository for exercising the service without a
// database. ListForAssignee returns the configured existing bookings; the
// exclude filter and terminal skips live in FindOverlapping, which the
// service applies on top.
type stubRepo struct {
	existing []*Booking
	listErr  error

	byID    map[string]*Booking
	nextID  int
	created []*Booking
	groups  map[string][]*Booking
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:   make(map[string]*Booking),
		groups: make(map[string][]*Booking),
	}
}

func (r *stubRepo) put(b *Booking) {
	r.byID[b.ID] = b
}

func (r *stubRepo) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("bk-%d", r.nextID)
	r.byID[b.ID] = b
	r.created = append(r.created, b)
	return nil
}

func (r *stubRepo) CreateGroup(_ context.Context, bookings []*Booking) error {
	for _, b := range bookings {
		r.nextID++
		b.ID = fmt.Sprintf("bk-%d", r.nextID)
		r.byID[b.ID] = b
		r.created = append(r.created, b)
	}
	if len(bookings) > 0 && bookings[0].RecurringGroupID != nil {
		r.groups[*bookings[0].RecurringGroupID] = bookings
	}
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) ListGroup(_ context.Context, groupID string) ([]*Booking, error) {
	bookings, ok := r.groups[groupID]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return bookings, nil
}

func (r *stubRepo) ListForAssignee(_ context.Context, _, _ *string, _ time.Time, _ string) ([]*Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.existing, nil
}

func (r *stubRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := r.byID[b.ID]; !ok {
		return ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *stubRepo) UpdatePayment(_ context.Context, id string, status PaymentStatus, method string, paidAt *time.Time) error {
	b, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.PaymentStatus = status
	b.PaymentMethod = method
	b.PaidAt = paidAt
	return nil
}

type fakeCustomers struct{ err error }

func (f *fakeCustomers) Create(context.Context, customer.CreateRequest) (*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &customer.Customer{ID: id, Name: "Dana Whitfield"}, nil
}
func (f *fakeCustomers) List(context.Context, customer.Filter) ([]*customer.Customer, int, error) {
	return nil, 0, nil
}
func (f *fakeCustomers) Update(context.Context, string, customer.UpdateRequest) (*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) Archive(context.Context, string) error { return nil }
func (f *fakeCustomers) Restore(context.Context, string) error { return nil }

type fakeStaff struct{ err error }

func (f *fakeStaff) Create(context.Context, staff.CreateRequest) (*staff.Member, error) {
	return nil, nil
}
func (f *fakeStaff) GetByID(_ context.Context, id string) (*staff.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &staff.Member{ID: id, Name: "Miguel Soto"}, nil
}
func (f *fakeStaff) List(context.Context, staff.Filter) ([]*staff.Member, int, error) {
	return nil, 0, nil
}
func (f *fakeStaff) Update(context.Context, string, staff.UpdateRequest) (*staff.Member, error) {
	return nil, nil
}
func (f *fakeStaff) Deactivate(context.Context, string) error { return nil }

type fakeTeams struct{ err error }

func (f *fakeTeams) Create(context.Context, team.CreateRequest) (*team.Team, error) {
	return nil, nil
}
func (f *fakeTeams) GetByID(_ context.Context, id string) (*team.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &team.Team{ID: id, Name: "Crew A"}, nil
}
func (f *fakeTeams) List(context.Context, team.Filter) ([]*team.Team, int, error) {
	return nil, 0, nil
}
func (f *fakeTeams) Update(context.Context, string, team.UpdateRequest) (*team.Team, error) {
	return nil, nil
}
func (f *fakeTeams) Delete(context.Context, string) error               { return nil }
func (f *fakeTeams) AddMember(context.Context, string, string) error    { return nil }
func (f *fakeTeams) RemoveMember(context.Context, string, string) error { return nil }

type fakeCatalog struct {
	priceCents int64
	err        error
}

func (f *fakeCatalog) Create(context.Context, catalog.CreateRequest) (*catalog.Item, error) {
	return nil, nil
}
func (f *fakeCatalog) GetByID(_ context.Context, id string) (*catalog.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.Item{ID: id, Name: "Deep Clean", BasePriceCents: f.priceCents}, nil
}
func (f *fakeCatalog) List(context.Context, catalog.Filter) ([]*catalog.Item, int, error) {
	return nil, 0, nil
}
func (f *fakeCatalog) Update(context.Context, string, catalog.UpdateRequest) (*catalog.Item, error) {
	return nil, nil
}
func (f *fakeCatalog) Retire(context.Context, string) error { return nil }

var fixedNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc := NewService(repo, &fakeCustomers{}, &fakeStaff{}, &fakeTeams{}, &fakeCatalog{priceCents: 12000}, zap.NewNop())
	svc.(*service).now = func() time.Time { return fixedNow }
	return svc
}

func baseCreateRequest(t *testing.T, staffID string) CreateRequest {
	t.Helper()
	return CreateRequest{
		CustomerID:  "cust-1",
		ServiceID:   "svc-1",
		StaffID:     &staffID,
		Date:        day(2026, time.September, 14),
		StartTime:   mustTime(t, "10:00"),
		EndTime:     mustTime(t, "12:00"),
		PricingMode: PricingPackage,
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending unpaid booking at the package price", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		b, err := svc.Create(ctx, baseCreateRequest(t, "staff-1"))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, PaymentUnpaid, b.PaymentStatus)
		assert.Equal(t, int64(12000), b.PriceCents)
		assert.NotEmpty(t, b.ID)
	})

	t.Run("custom pricing requires a price", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseCreateRequest(t, "staff-1")
		req.PricingMode = PricingCustom
		req.PriceCents = nil

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrPriceRequired)
	})

	t.Run("rejects both staff and team assignees", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		teamID := "team-1"
		req := baseCreateRequest(t, "staff-1")
		req.TeamID = &teamID

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrBothAssignees)
	})

	t.Run("rejects inverted time range", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseCreateRequest(t, "staff-1")
		req.StartTime = mustTime(t, "12:00")
		req.EndTime = mustTime(t, "10:00")

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("rejects past dates", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseCreateRequest(t, "staff-1")
		req.Date = day(2026, time.August, 31)

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrDatePast)
	})

	t.Run("rejects overlap with an existing booking", func(t *testing.T) {
		repo := newStubRepo()
		repo.existing = []*Booking{testBooking(t, "b1", "09:00", "11:00", StatusConfirmed)}
		svc := newTestService(t, repo)

		_, err := svc.Create(ctx, baseCreateRequest(t, "staff-1"))
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Empty(t, repo.created)
	})

	t.Run("back to back bookings are allowed", func(t *testing.T) {
		repo := newStubRepo()
		repo.existing = []*Booking{testBooking(t, "b1", "09:00", "11:00", StatusConfirmed)}
		svc := newTestService(t, repo)

		req := baseCreateRequest(t, "staff-1")
		req.StartTime = mustTime(t, "11:00")
		req.EndTime = mustTime(t, "13:00")

		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("unassigned bookings skip the conflict scan", func(t *testing.T) {
		repo := newStubRepo()
		repo.listErr = errors.New("db down")
		svc := newTestService(t, repo)

		req := baseCreateRequest(t, "staff-1")
		req.StaffID = nil

		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	})
}

func TestServiceCheckConflicts(t *testing.T) {
	ctx := context.Background()
	staffID := "staff-1"

	t.Run("fails closed when the scan errors", func(t *testing.T) {
		repo := newStubRepo()
		repo.listErr = errors.New("db down")
		svc := newTestService(t, repo)

		_, err := svc.CheckConflicts(ctx, ConflictCandidate{
			StaffID:   &staffID,
			Date:      day(2026, time.September, 14),
			StartTime: mustTime(t, "10:00"),
			EndTime:   mustTime(t, "12:00"),
		})
		assert.Error(t, err)
	})

	t.Run("no assignee means no conflicts", func(t *testing.T) {
		repo := newStubRepo()
		repo.listErr = errors.New("db down")
		svc := newTestService(t, repo)

		conflicts, err := svc.CheckConflicts(ctx, ConflictCandidate{
			Date:      day(2026, time.September, 14),
			StartTime: mustTime(t, "10:00"),
			EndTime:   mustTime(t, "12:00"),
		})
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	staffID := "staff-1"

	setup := func(t *testing.T) (*stubRepo, Service, *Booking) {
		repo := newStubRepo()
		b2 := testBooking(t, "b2", "13:00", "14:00", StatusPending)
		b2.CustomerID = "cust-1"
		b2.ServiceID = "svc-1"
		repo.put(b2)
		repo.existing = []*Booking{
			testBooking(t, "b1", "09:00", "11:00", StatusConfirmed),
			b2,
		}
		return repo, newTestService(t, repo), b2
	}

	t.Run("moving into an occupied range is rejected", func(t *testing.T) {
		_, svc, b2 := setup(t)

		_, err := svc.Update(ctx, b2.ID, UpdateRequest{
			StaffID:     &staffID,
			Date:        day(2026, time.September, 14),
			StartTime:   mustTime(t, "10:00"),
			EndTime:     mustTime(t, "12:00"),
			PricingMode: PricingPackage,
		})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("a booking does not conflict with its own old slot", func(t *testing.T) {
		repo := newStubRepo()
		b1 := testBooking(t, "b1", "09:00", "11:00", StatusConfirmed)
		b1.CustomerID = "cust-1"
		b1.ServiceID = "svc-1"
		repo.put(b1)
		repo.existing = []*Booking{b1}
		svc := newTestService(t, repo)

		got, err := svc.Update(ctx, "b1", UpdateRequest{
			StaffID:     &staffID,
			Date:        day(2026, time.September, 14),
			StartTime:   mustTime(t, "09:30"),
			EndTime:     mustTime(t, "11:30"),
			PricingMode: PricingPackage,
		})
		require.NoError(t, err)
		assert.Equal(t, mustTime(t, "09:30"), got.StartTime)
	})
}

func TestServiceStatusAndPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled bookings refuse status changes", func(t *testing.T) {
		repo := newStubRepo()
		repo.put(testBooking(t, "b1", "09:00", "11:00", StatusCancelled))
		svc := newTestService(t, repo)

		_, err := svc.UpdateStatus(ctx, "b1", StatusConfirmed)
		assert.ErrorIs(t, err, ErrCancelledTerminal)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		repo := newStubRepo()
		repo.put(testBooking(t, "b1", "09:00", "11:00", StatusPending))
		svc := newTestService(t, repo)

		_, err := svc.UpdateStatus(ctx, "b1", Status("archived"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("marking paid stamps the payment time", func(t *testing.T) {
		repo := newStubRepo()
		repo.put(testBooking(t, "b1", "09:00", "11:00", StatusCompleted))
		svc := newTestService(t, repo)

		b, err := svc.UpdatePayment(ctx, "b1", PaymentRequest{Status: PaymentPaid, Method: "card"})
		require.NoError(t, err)
		require.NotNil(t, b.PaidAt)
		assert.Equal(t, fixedNow, *b.PaidAt)
		assert.Equal(t, "card", b.PaymentMethod)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		repo := newStubRepo()
		repo.put(testBooking(t, "b1", "09:00", "11:00", StatusCancelled))
		svc := newTestService(t, repo)

		assert.NoError(t, svc.Cancel(ctx, "b1"))
	})
}

func TestServiceCreateRecurringGroup(t *testing.T) {
	ctx := context.Background()
	staffID := "staff-1"
	price := int64(5001)

	baseReq := func() RecurringRequest {
		return RecurringRequest{
			CustomerID:  "cust-1",
			ServiceID:   "svc-1",
			StaffID:     &staffID,
			StartTime:   mustTime(t, "10:00"),
			EndTime:     mustTime(t, "12:00"),
			PricingMode: PricingCustom,
			PriceCents:  &price,
			Frequency:   2,
			Mode:        ModeCustom,
			Dates: []time.Time{
				day(2026, time.November, 3),
				day(2026, time.September, 20),
			},
		}
	}

	t.Run("creates a sequenced group with the price split", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		bookings, err := svc.CreateRecurringGroup(ctx, baseReq())
		require.NoError(t, err)
		require.Len(t, bookings, 2)

		first, second := bookings[0], bookings[1]

		// Sequence follows sorted date order, not input order.
		assert.Equal(t, 1, first.RecurringSeq)
		assert.Equal(t, day(2026, time.September, 20), first.Date)
		assert.Equal(t, 2, second.RecurringSeq)
		assert.Equal(t, day(2026, time.November, 3), second.Date)

		require.NotNil(t, first.RecurringGroupID)
		assert.Equal(t, *first.RecurringGroupID, *second.RecurringGroupID)
		assert.Equal(t, 2, first.RecurringTotal)
		assert.Equal(t, "custom", first.RecurringPattern)

		// 5001 split over two: remainder lands on the first occurrence.
		assert.Equal(t, int64(2501), first.PriceCents)
		assert.Equal(t, int64(2500), second.PriceCents)
	})

	t.Run("auto mode generates the monthly chain", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		start := day(2026, time.September, 15)
		req := baseReq()
		req.Mode = ModeAuto
		req.StartDate = &start
		req.IntervalMonths = 1
		req.Dates = nil

		bookings, err := svc.CreateRecurringGroup(ctx, req)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, day(2026, time.October, 15), bookings[1].Date)
		assert.Equal(t, "auto-monthly-1", bookings[0].RecurringPattern)
	})

	t.Run("rejects unsupported frequency", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseReq()
		req.Frequency = 3

		_, err := svc.CreateRecurringGroup(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})

	t.Run("auto mode requires a start date", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseReq()
		req.Mode = ModeAuto
		req.IntervalMonths = 1
		req.StartDate = nil

		_, err := svc.CreateRecurringGroup(ctx, req)
		assert.ErrorIs(t, err, ErrPatternStartDate)
	})

	t.Run("reports each problem with a custom selection", func(t *testing.T) {
		repo := newStubRepo()
		svc := newTestService(t, repo)

		req := baseReq()
		req.Dates = []time.Time{
			day(2026, time.August, 1),
			day(2026, time.August, 1),
		}

		_, err := svc.CreateRecurringGroup(ctx, req)

		var dateErr *DateValidationError
		require.ErrorAs(t, err, &dateErr)
		assert.Len(t, dateErr.Messages, 2)
		assert.Empty(t, repo.created)
	})

	t.Run("any conflicting occurrence blocks the whole series", func(t *testing.T) {
		repo := newStubRepo()
		repo.existing = []*Booking{testBooking(t, "b1", "11:00", "13:00", StatusConfirmed)}
		svc := newTestService(t, repo)

		_, err := svc.CreateRecurringGroup(ctx, baseReq())
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Empty(t, repo.created)
	})
}
