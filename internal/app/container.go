package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/club-booking-backend/internal/api"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/club"
	"github.com/nekogravitycat/club-booking-backend/internal/config"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/dashboard"
	"github.com/nekogravitycat/club-booking-backend/internal/event"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/file"
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
	"github.com/nekogravitycat/club-booking-backend/internal/metrics"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/club-booking-backend/internal/reservation"
	"github.com/nekogravitycat/club-booking-backend/internal/review"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
	"github.com/nekogravitycat/club-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	Publisher   event.Publisher
	Metrics     *metrics.Metrics
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
// Publisher should be closed by the caller on shutdown.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, publisher event.Publisher) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	m := metrics.New()

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	// User Module
	userService := user.NewService(user.NewPgxRepository(pool), passwordHasher)

	// Club Module
	clubService := club.NewService(club.NewPgxRepository(pool))

	// Image galleries
	clubImageService := gallery.NewService(gallery.NewPgxRepository(pool, gallery.ClubImages), gallery.ClubImages)
	courtImageService := gallery.NewService(gallery.NewPgxRepository(pool, gallery.CourtImages), gallery.CourtImages)
	reviewImageService := gallery.NewService(gallery.NewPgxRepository(pool, gallery.ReviewImages), gallery.ReviewImages)

	// Court and Slot Modules
	courtService := court.NewService(court.NewPgxRepository(pool), clubService, courtImageService)
	slotService := slot.NewService(slot.NewPgxRepository(pool), courtService)

	// Reservation Module
	reservationService := reservation.NewService(reservation.NewPgxRepository(pool), clubService, publisher, m)

	// Review and Facility Modules
	reviewService := review.NewService(review.NewPgxRepository(pool), clubService)
	facilityService := facility.NewService(facility.NewPgxRepository(pool), clubService)

	// Owner Dashboard
	dashboardService := dashboard.NewService(clubService, courtService, reservationService)

	// Uploads
	fileService := file.NewService(store, cfg.UploadMaxBytes)

	router := api.NewRouter(api.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		TrustIdentityHeaders: cfg.TrustIdentityHeaders,
		AuthRatePerMinute:    cfg.AuthRatePerMinute,
		UploadMaxBytes:       cfg.UploadMaxBytes,
		DB:                   pool,
		JWTManager:           jwtManager,
		Metrics:              m,
		UserService:          userService,
		ClubService:          clubService,
		CourtService:         courtService,
		SlotService:          slotService,
		ReservationService:   reservationService,
		ReviewService:        reviewService,
		FacilityService:      facilityService,
		ClubImageService:     clubImageService,
		CourtImageService:    courtImageService,
		ReviewImageService:   reviewImageService,
		DashboardService:     dashboardService,
		FileService:          fileService,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		Publisher:   publisher,
		Metrics:     m,
		UserService: userService,
	}, nil
}
