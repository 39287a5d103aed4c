package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	clubHttp "github.com/nekogravitycat/club-booking-backend/internal/club/http"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	courtHttp "github.com/nekogravitycat/club-booking-backend/internal/court/http"
	"github.com/nekogravitycat/club-booking-backend/internal/dashboard"
	dashboardHttp "github.com/nekogravitycat/club-booking-backend/internal/dashboard/http"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	facilityHttp "github.com/nekogravitycat/club-booking-backend/internal/facility/http"
	"github.com/nekogravitycat/club-booking-backend/internal/file"
	fileHttp "github.com/nekogravitycat/club-booking-backend/internal/file/http"
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
	galleryHttp "github.com/nekogravitycat/club-booking-backend/internal/gallery/http"
	"github.com/nekogravitycat/club-booking-backend/internal/metrics"
	"github.com/nekogravitycat/club-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/club-booking-backend/internal/reservation/http"
	"github.com/nekogravitycat/club-booking-backend/internal/review"
	reviewHttp "github.com/nekogravitycat/club-booking-backend/internal/review/http"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
	slotHttp "github.com/nekogravitycat/club-booking-backend/internal/slot/http"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/club-booking-backend/internal/user/http"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config collects everything the router needs.
type Config struct {
	IsProduction         bool
	ProdOrigins          []string
	TrustIdentityHeaders bool
	AuthRatePerMinute    int
	UploadMaxBytes       int64

	DB         Pinger
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics

	UserService        user.Service
	ClubService        club.Service
	CourtService       court.Service
	SlotService        slot.Service
	ReservationService reservation.Service
	ReviewService      review.Service
	FacilityService    facility.Service
	ClubImageService   gallery.Service
	CourtImageService  gallery.Service
	ReviewImageService gallery.Service
	DashboardService   dashboard.Service
	FileService        file.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles the global middleware and registers routes for every module under /api.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Recovery turns panics into 500s; requestLogger writes one slog line per request.
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Club booking API is running"})
	})
	r.GET("/healthz", healthz(cfg.DB))
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Gates
	userGate := auth.RequireUser()
	ownerGate := auth.RequireOwner()
	ownerOnly := auth.RequireRoles(auth.RoleOwner)
	authLimiter := NewIPRateLimiter(cfg.AuthRatePerMinute, authBurst).Middleware()

	// Handlers
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	clubHandler := clubHttp.NewHandler(cfg.ClubService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	clubImageHandler := galleryHttp.NewHandler(cfg.ClubImageService, gallery.ClubImages)
	courtImageHandler := galleryHttp.NewHandler(cfg.CourtImageService, gallery.CourtImages)
	reviewImageHandler := galleryHttp.NewHandler(cfg.ReviewImageService, gallery.ReviewImages)
	dashboardHandler := dashboardHttp.NewHandler(cfg.DashboardService)
	fileHandler := fileHttp.NewHandler(cfg.FileService, cfg.UploadMaxBytes)

	fileHttp.RegisterFileServer(r, fileHandler)

	api := r.Group("/api", auth.Identify(cfg.JWTManager, cfg.TrustIdentityHeaders))
	{
		userHttp.RegisterRoutes(api, userHandler, authLimiter, userGate)
		clubHttp.RegisterRoutes(api, clubHandler, ownerGate)
		courtHttp.RegisterRoutes(api, courtHandler, ownerGate)
		slotHttp.RegisterRoutes(api, slotHandler, ownerGate)
		reservationHttp.RegisterRoutes(api, reservationHandler, userGate)
		reviewHttp.RegisterRoutes(api, reviewHandler, userGate)
		facilityHttp.RegisterRoutes(api, facilityHandler, ownerGate)
		galleryHttp.RegisterRoutes(api, "/club-images", clubImageHandler, ownerGate)
		galleryHttp.RegisterRoutes(api, "/court-images", courtImageHandler, ownerGate)
		galleryHttp.RegisterRoutes(api, "/review-images", reviewImageHandler, userGate)
		dashboardHttp.RegisterRoutes(api, dashboardHandler, ownerOnly)
		fileHttp.RegisterRoutes(api, fileHandler, userGate)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if cfg.IsProduction && len(cfg.ProdOrigins) > 0 {
		config.AllowOrigins = cfg.ProdOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.HeaderRole, auth.HeaderUserID}
	return config
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		}
		if id, ok := auth.GetIdentity(c); ok {
			attrs = append(attrs, slog.String("role", id.Role), slog.Int64("user_id", id.UserID))
		}

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}
