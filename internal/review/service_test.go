package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
)

// stubRepo is an in-memory Repository for exercising the service without a
// database.
type stubRepo struct {
	byID      map[string]*Review
	byBooking map[string]*Review
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:      make(map[string]*Review),
		byBooking: make(map[string]*Review),
	}
}

func (r *stubRepo) Create(_ context.Context, rev *Review) error {
	if _, ok := r.byBooking[rev.BookingID]; ok {
		return ErrAlreadyReviewed
	}
	rev.ID = "rev-1"
	r.byID[rev.ID] = rev
	r.byBooking[rev.BookingID] = rev
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Review, error) {
	rev, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rev, nil
}

func (r *stubRepo) GetByBooking(_ context.Context, bookingID string) (*Review, error) {
	rev, ok := r.byBooking[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	return rev, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Review, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	rev, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byBooking, rev.BookingID)
	return nil
}

// fakeBookings serves GetByID from a fixed map. The embedded interface covers
// the methods the review service never calls.
type fakeBookings struct {
	booking.Service
	byID map[string]*booking.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func newTestService() (Service, *stubRepo) {
	repo := newStubRepo()
	bookings := &fakeBookings{byID: map[string]*booking.Booking{
		"bk-1": {ID: "bk-1", CustomerID: "cus-7"},
	}}
	return NewService(repo, bookings), repo
}

func TestServiceCreate(t *testing.T) {
	t.Run("customer is taken from the booking", func(t *testing.T) {
		svc, _ := newTestService()

		rev, err := svc.Create(context.Background(), CreateRequest{
			BookingID: "bk-1",
			Rating:    5,
			Comment:   "spotless",
		})
		require.NoError(t, err)
		assert.Equal(t, "cus-7", rev.CustomerID)
		assert.Equal(t, 5, rev.Rating)
	})

	t.Run("rating must be between 1 and 5", func(t *testing.T) {
		svc, _ := newTestService()

		for _, rating := range []int{0, -1, 6} {
			_, err := svc.Create(context.Background(), CreateRequest{
				BookingID: "bk-1",
				Rating:    rating,
			})
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), CreateRequest{
			BookingID: "bk-404",
			Rating:    4,
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("one review per booking", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), CreateRequest{BookingID: "bk-1", Rating: 4})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateRequest{BookingID: "bk-1", Rating: 2})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})
}

func TestServiceGetByBooking(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateRequest{BookingID: "bk-1", Rating: 3})
	require.NoError(t, err)

	rev, err := svc.GetByBooking(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, rev.ID)

	_, err = svc.GetByBooking(context.Background(), "bk-2")
	assert.ErrorIs(t, err, ErrNotFound)
}
