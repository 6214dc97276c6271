package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/storage"
)

const (
	thumbMaxWidth  = 400
	thumbMaxHeight = 400
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Upload carries one incoming photo. Size must be the exact content length;
// it is checked against the configured maximum before anything is read.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
	Kind        Kind
	Caption     string
}

type Service interface {
	Upload(ctx context.Context, bookingID string, up Upload) (*Photo, error)
	GetByID(ctx context.Context, id string) (*Photo, error)

	// Open returns the photo's original content; OpenThumbnail the reduced
	// JPEG rendition. Callers close the reader.
	Open(ctx context.Context, id string) (*Photo, io.ReadCloser, error)
	OpenThumbnail(ctx context.Context, id string) (*Photo, io.ReadCloser, error)

	ListByBooking(ctx context.Context, bookingID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	bookings  booking.Service
	blobs     storage.Blobs
	processor *storage.ImageProcessor
	maxBytes  int64
	logger    *zap.Logger
}

func NewService(repo Repository, bookings booking.Service, blobs storage.Blobs, processor *storage.ImageProcessor, maxBytes int64, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		bookings:  bookings,
		blobs:     blobs,
		processor: processor,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

func (s *service) Upload(ctx context.Context, bookingID string, up Upload) (*Photo, error) {
	ext, ok := allowedTypes[up.ContentType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if up.Size > s.maxBytes {
		return nil, ErrTooLarge
	}
	if !up.Kind.Valid() {
		up.Kind = KindOther
	}

	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if err == booking.ErrNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	// The content is read once into memory: the original is written to blob
	// storage and the same bytes feed the thumbnail encoder.
	content, err := io.ReadAll(io.LimitReader(up.Content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if int64(len(content)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	id := uuid.New().String()
	dir := filepath.Join("bookings", bookingID)
	p := &Photo{
		ID:          id,
		BookingID:   bookingID,
		Kind:        up.Kind,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		SizeBytes:   int64(len(content)),
		Path:        filepath.Join(dir, id+ext),
		ThumbPath:   filepath.Join(dir, id+"_thumb.jpg"),
		Caption:     up.Caption,
	}

	if err := s.blobs.Save(ctx, p.Path, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	thumb, err := s.processor.Thumbnail(bytes.NewReader(content), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		s.blobs.Delete(ctx, p.Path)
		return nil, ErrUnsupportedType
	}
	if err := s.blobs.Save(ctx, p.ThumbPath, thumb); err != nil {
		s.blobs.Delete(ctx, p.Path)
		return nil, fmt.Errorf("save thumbnail failed: %w", err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.blobs.Delete(ctx, p.Path)
		s.blobs.Delete(ctx, p.ThumbPath)
		return nil, err
	}

	s.logger.Info("photo uploaded",
		zap.String("booking_id", bookingID),
		zap.String("photo_id", id),
		zap.Int64("size_bytes", p.SizeBytes))

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Open(ctx context.Context, id string) (*Photo, io.ReadCloser, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Get(ctx, p.Path)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	return p, rc, nil
}

func (s *service) OpenThumbnail(ctx context.Context, id string) (*Photo, io.ReadCloser, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Get(ctx, p.ThumbPath)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	return p, rc, nil
}

func (s *service) ListByBooking(ctx context.Context, bookingID string) ([]*Photo, error) {
	return s.repo.ListByBooking(ctx, bookingID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Blob removal after the row is gone; orphaned files are harmless and
	// Delete ignores missing blobs.
	if err := s.blobs.Delete(ctx, p.Path); err != nil {
		s.logger.Warn("delete photo blob failed", zap.String("photo_id", id), zap.Error(err))
	}
	if err := s.blobs.Delete(ctx, p.ThumbPath); err != nil {
		s.logger.Warn("delete thumbnail blob failed", zap.String("photo_id", id), zap.Error(err))
	}
	return nil
}
