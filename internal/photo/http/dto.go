package http

import (
	"time"

	"github.com/mellowtide/homecare-admin-backend/internal/photo"
)

type PhotoResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Caption     string    `json:"caption"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPhotoResponse(p *photo.Photo) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Kind:        string(p.Kind),
		FileName:    p.FileName,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		Caption:     p.Caption,
		CreatedAt:   p.CreatedAt,
	}
}
