package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nekogravitycat/club-booking-backend/internal/app"
	"github.com/nekogravitycat/club-booking-backend/internal/config"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/event"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	skipReason string
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipReason = "integration tests skipped in -short mode"
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, dsn, err := startPostgres(ctx)
	if err != nil {
		skipReason = fmt.Sprintf("postgres container unavailable: %v", err)
		os.Exit(m.Run())
	}

	code := func() int {
		defer func() {
			if err := container.Terminate(ctx); err != nil {
				log.Printf("failed to terminate postgres container: %v", err)
			}
		}()

		if err := db.MigrateUp(dsn); err != nil {
			log.Printf("failed to migrate: %v", err)
			return 1
		}

		testPool, err = db.NewPool(ctx, dsn, db.PoolOptions{MaxConns: 20})
		if err != nil {
			log.Printf("failed to connect: %v", err)
			return 1
		}
		defer testPool.Close()

		uploadDir, err := os.MkdirTemp("", "club-uploads-*")
		if err != nil {
			log.Printf("failed to create upload dir: %v", err)
			return 1
		}
		defer os.RemoveAll(uploadDir)

		gin.SetMode(gin.TestMode)
		c, err := app.NewContainer(&config.Config{
			JWTSecret:            "integration-secret",
			JWTAccessTokenTTL:    30 * time.Minute,
			BcryptCost:           4, // Lower cost for testing purposes
			TrustIdentityHeaders: true,
			UploadDir:            uploadDir,
			UploadMaxBytes:       1 << 20,
		}, testPool, event.NopPublisher{})
		if err != nil {
			log.Printf("failed to build container: %v", err)
			return 1
		}
		testRouter = c.Router

		return m.Run()
	}()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (container *postgres.PostgresContainer, dsn string, err error) {
	// testcontainers panics instead of erroring when no Docker host is found.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker not available: %v", r)
		}
	}()

	container, err = postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("clubs"),
		postgres.WithUsername("clubs"),
		postgres.WithPassword("clubs"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}
	return container, dsn, nil
}

func requireDB(t *testing.T) {
	t.Helper()
	if skipReason != "" {
		t.Skip(skipReason)
	}
}

// account is a signed-up user and its bearer token.
type account struct {
	ID    int64
	Role  string
	Token string
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func signup(t *testing.T, role string) account {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/auth/signup", map[string]any{
		"full_name": gofakeit.Name(),
		"email":     gofakeit.Email(),
		"phone":     gofakeit.Phone(),
		"password":  gofakeit.Password(true, true, true, false, false, 12),
		"role":      role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[struct {
		User struct {
			ID   int64  `json:"user_id"`
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}](t, w)
	require.NotEmpty(t, resp.Token)
	return account{ID: resp.User.ID, Role: resp.User.Role, Token: resp.Token}
}

func createClub(t *testing.T, owner account) int64 {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/clubs", map[string]any{
		"name":    gofakeit.Company() + " Padel",
		"address": gofakeit.Street(),
		"city":    gofakeit.City(),
	}, owner.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID int64 `json:"club_id"`
	}](t, w).ID
}

func createCourt(t *testing.T, owner account, clubID int64) int64 {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/courts", map[string]any{
		"club_id": clubID,
		"name":    "Court " + gofakeit.Letter(),
	}, owner.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID int64 `json:"court_id"`
	}](t, w).ID
}

func createSlot(t *testing.T, owner account, courtID int64, from, to string) int64 {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/slots", map[string]any{
		"court_id":  courtID,
		"time_from": from,
		"time_to":   to,
		"price":     25.5,
	}, owner.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID int64 `json:"slot_id"`
	}](t, w).ID
}

func reserve(clubID, courtID, slotID int64, date string, token string) *httptest.ResponseRecorder {
	return executeRequest(http.MethodPost, "/api/reservations", map[string]any{
		"club_id":  clubID,
		"court_id": courtID,
		"slot_id":  slotID,
		"date_iso": date,
	}, token)
}

// futureDate returns a distinct calendar date per call so tests never share bookings.
func futureDate(offsetDays int) string {
	return time.Now().AddDate(0, 0, 30+offsetDays).Format("2006-01-02")
}
