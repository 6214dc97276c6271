package review

import (
	"context"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
)

type CreateRequest struct {
	BookingID string
	Rating    int
	Comment   string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByBooking(ctx context.Context, bookingID string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	bookings booking.Service
}

func NewService(repo Repository, bookings booking.Service) Service {
	return &service{repo: repo, bookings: bookings}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// The customer on the review is always the customer of the booking.
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if err == booking.ErrNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	rev := &Review{
		BookingID:  req.BookingID,
		CustomerID: b.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, rev.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByBooking(ctx context.Context, bookingID string) (*Review, error) {
	return s.repo.GetByBooking(ctx, bookingID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
