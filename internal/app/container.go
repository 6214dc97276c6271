package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mellowtide/homecare-admin-backend/internal/api"
	"github.com/mellowtide/homecare-admin-backend/internal/booking"
	"github.com/mellowtide/homecare-admin-backend/internal/catalog"
	"github.com/mellowtide/homecare-admin-backend/internal/customer"
	"github.com/mellowtide/homecare-admin-backend/internal/photo"
	"github.com/mellowtide/homecare-admin-backend/internal/pkg/storage"
	"github.com/mellowtide/homecare-admin-backend/internal/review"
	"github.com/mellowtide/homecare-admin-backend/internal/staff"
	"github.com/mellowtide/homecare-admin-backend/internal/team"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	MetricsEnabled bool
	PhotoDir       string
	MaxPhotoBytes  int64
	DBPool         *pgxpool.Pool
	Logger         *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	blobs, err := storage.NewLocalBlobs(cfg.PhotoDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}
	processor := storage.NewImageProcessor()

	// Customer Module
	customerRepo := customer.NewPgxRepository(cfg.DBPool)
	customerService := customer.NewService(customerRepo)

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo)

	// Team Module
	teamRepo := team.NewPgxRepository(cfg.DBPool)
	teamService := team.NewService(teamRepo)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogService := catalog.NewService(catalogRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, customerService, staffService, teamService, catalogService, cfg.Logger)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingService)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, bookingService, blobs, processor, cfg.MaxPhotoBytes, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		MetricsEnabled:  cfg.MetricsEnabled,
		Logger:          cfg.Logger,
		CustomerService: customerService,
		StaffService:    staffService,
		TeamService:     teamService,
		CatalogService:  catalogService,
		BookingService:  bookingService,
		ReviewService:   reviewService,
		PhotoService:    photoService,
	})

	return &Container{Router: router}, nil
}
