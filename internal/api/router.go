package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
	bookingHttp "github.com/mellowtide/homecare-admin-backend/internal/booking/http"
	"github.com/mellowtide/homecare-admin-backend/internal/catalog"
	catalogHttp "github.com/mellowtide/homecare-admin-backend/internal/catalog/http"
	"github.com/mellowtide/homecare-admin-backend/internal/customer"
	customerHttp "github.com/mellowtide/homecare-admin-backend/internal/customer/http"
	"github.com/mellowtide/homecare-admin-backend/internal/photo"
	photoHttp "github.com/mellowtide/homecare-admin-backend/internal/photo/http"
	"github.com/mellowtide/homecare-admin-backend/internal/review"
	reviewHttp "github.com/mellowtide/homecare-admin-backend/internal/review/http"
	"github.com/mellowtide/homecare-admin-backend/internal/staff"
	staffHttp "github.com/mellowtide/homecare-admin-backend/internal/staff/http"
	"github.com/mellowtide/homecare-admin-backend/internal/team"
	teamHttp "github.com/mellowtide/homecare-admin-backend/internal/team/http"
)

// Config holds the services and settings the router wires together.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	MetricsEnabled bool
	Logger         *zap.Logger

	CustomerService customer.Service
	StaffService    staff.Service
	TeamService     team.Service
	CatalogService  catalog.Service
	BookingService  booking.Service
	ReviewService   review.Service
	PhotoService    photo.Service
}

// NewRouter assembles middleware and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), Recovery(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	if cfg.MetricsEnabled {
		r.Use(Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	customerHandler := customerHttp.NewHandler(cfg.CustomerService)
	staffHandler := staffHttp.NewHandler(cfg.StaffService)
	teamHandler := teamHttp.NewHandler(cfg.TeamService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	v1 := r.Group("/v1")
	{
		customerHttp.RegisterRoutes(v1, customerHandler)
		staffHttp.RegisterRoutes(v1, staffHandler)
		teamHttp.RegisterRoutes(v1, teamHandler)
		catalogHttp.RegisterRoutes(v1, catalogHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
		reviewHttp.RegisterRoutes(v1, reviewHandler)
		photoHttp.RegisterRoutes(v1, photoHandler)
	}

	return r
}
