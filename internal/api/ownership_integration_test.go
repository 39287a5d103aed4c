package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipSymmetry(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	intruder := signup(t, "owner")
	clubID := createClub(t, owner)
	courtID := createCourt(t, owner, clubID)
	slotID := createSlot(t, owner, courtID, "14:00", "15:00")

	denied := func(t *testing.T, code int) {
		t.Helper()
		assert.Contains(t, []int{http.StatusForbidden, http.StatusNotFound}, code)
	}

	t.Run("Club", func(t *testing.T) {
		denied(t, executeRequest(http.MethodPut, fmt.Sprintf("/api/clubs/%d", clubID), map[string]any{"name": "Mine now"}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodDelete, fmt.Sprintf("/api/clubs/%d", clubID), nil, intruder.Token).Code)
	})

	t.Run("Court", func(t *testing.T) {
		denied(t, executeRequest(http.MethodPost, "/api/courts", map[string]any{"club_id": clubID, "name": "Sneaky"}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodPut, fmt.Sprintf("/api/courts/%d", courtID), map[string]any{"name": "Sneaky"}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodDelete, fmt.Sprintf("/api/courts/%d", courtID), nil, intruder.Token).Code)
	})

	t.Run("Slot", func(t *testing.T) {
		denied(t, executeRequest(http.MethodPost, "/api/slots", map[string]any{
			"court_id": courtID, "time_from": "15:00", "time_to": "16:00", "price": 10,
		}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodPut, fmt.Sprintf("/api/slots/%d", slotID), map[string]any{"price": 1}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodDelete, fmt.Sprintf("/api/slots/%d", slotID), nil, intruder.Token).Code)
	})

	t.Run("Images", func(t *testing.T) {
		denied(t, executeRequest(http.MethodPost, "/api/club-images", map[string]any{"club_id": clubID, "image_url": "/uploads/clubs/x.jpg"}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodPost, "/api/court-images", map[string]any{"court_id": courtID, "image_url": "/uploads/courts/x.jpg"}, intruder.Token).Code)

		w := executeRequest(http.MethodPost, "/api/court-images", map[string]any{"court_id": courtID, "image_url": "/uploads/courts/y.jpg"}, owner.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		imageID := decode[struct {
			ID int64 `json:"image_id"`
		}](t, w).ID

		denied(t, executeRequest(http.MethodPut, fmt.Sprintf("/api/court-images/%d", imageID), map[string]any{"position": 3}, intruder.Token).Code)
		denied(t, executeRequest(http.MethodDelete, fmt.Sprintf("/api/court-images/%d", imageID), nil, intruder.Token).Code)
	})

	t.Run("Plain User Is Gated", func(t *testing.T) {
		player := signup(t, "user")
		w := executeRequest(http.MethodPut, fmt.Sprintf("/api/courts/%d", courtID), map[string]any{"name": "x"}, player.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner Still Can", func(t *testing.T) {
		w := executeRequest(http.MethodPut, fmt.Sprintf("/api/slots/%d", slotID), map[string]any{"price": 30}, owner.Token)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestIdentityHeaders(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	clubID := createClub(t, owner)

	req := func(role, userID string) int {
		w := executeRequestWithHeaders(http.MethodPut, fmt.Sprintf("/api/clubs/%d", clubID), map[string]any{"about": "hi"}, map[string]string{
			"x-role":    role,
			"x-user-id": userID,
		})
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, req("", ""))
	assert.Equal(t, http.StatusForbidden, req("user", fmt.Sprint(owner.ID)))
	assert.Equal(t, http.StatusForbidden, req("owner", "not-a-number"))
	assert.Equal(t, http.StatusOK, req("OWNER", fmt.Sprint(owner.ID)))

	t.Run("Non Numeric Id Cannot Create", func(t *testing.T) {
		headers := map[string]string{"x-role": "owner", "x-user-id": "abc"}
		w := executeRequestWithHeaders(http.MethodPost, "/api/clubs", map[string]any{"name": "Ghost Club"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		headers["x-role"] = "user"
		w = executeRequestWithHeaders(http.MethodPost, "/api/reviews", map[string]any{"club_id": clubID, "stars": 3, "comment": "hm"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("Deleted Account Cannot Create", func(t *testing.T) {
		headers := map[string]string{"x-role": "owner", "x-user-id": "987654321"}
		w := executeRequestWithHeaders(http.MethodPost, "/api/clubs", map[string]any{"name": "Ghost Club"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
