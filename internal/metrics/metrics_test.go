package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/clubs/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/clubs/1", "/api/clubs/2", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	t.Run("Counts By Route Pattern", func(t *testing.T) {
		assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/clubs/:id", "204")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	})

	t.Run("Reservation Outcomes", func(t *testing.T) {
		m.ReservationOutcome(OutcomeCreated)
		m.ReservationOutcome(OutcomeConflict)
		m.ReservationOutcome(OutcomeConflict)
		assert.Equal(t, 2.0, testutil.ToFloat64(m.reservations.WithLabelValues(OutcomeConflict)))
	})

	t.Run("Exposition", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
		assert.Contains(t, w.Body.String(), "reservations_total")
	})
}
