package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRequestWithHeaders(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	reqBody, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func TestClubRoundTrip(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	in := map[string]any{
		"name":    gofakeit.Company(),
		"address": gofakeit.Street(),
		"city":    gofakeit.City(),
		"lat":     41.387917,
		"lon":     2.169919,
	}

	w := executeRequest(http.MethodPost, "/api/clubs", in, owner.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[struct {
		ID int64 `json:"club_id"`
	}](t, w).ID

	w = executeRequest(http.MethodGet, fmt.Sprintf("/api/clubs/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[struct {
		Name    string  `json:"name"`
		Address string  `json:"address"`
		City    string  `json:"city"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		OwnerID int64   `json:"owner_id"`
	}](t, w)
	assert.Equal(t, in["name"], out.Name)
	assert.Equal(t, in["address"], out.Address)
	assert.Equal(t, in["city"], out.City)
	assert.Equal(t, in["lat"], out.Lat)
	assert.Equal(t, in["lon"], out.Lon)
	assert.Equal(t, owner.ID, out.OwnerID)
}

func TestReviewPartialUpdate(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	author := signup(t, "user")
	clubID := createClub(t, owner)

	w := executeRequest(http.MethodPost, "/api/reviews", map[string]any{
		"club_id": clubID,
		"stars":   4,
		"comment": "Great lighting",
	}, author.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[struct {
		ID int64 `json:"review_id"`
	}](t, w).ID

	type reviewBody struct {
		Stars   int    `json:"stars"`
		Comment string `json:"comment"`
	}

	w = executeRequest(http.MethodPut, fmt.Sprintf("/api/reviews/%d", id), map[string]any{"comment": "Okay nets"}, author.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[reviewBody](t, w)
	assert.Equal(t, 4, got.Stars)
	assert.Equal(t, "Okay nets", got.Comment)

	w = executeRequest(http.MethodPut, fmt.Sprintf("/api/reviews/%d", id), map[string]any{"stars": 2}, author.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[reviewBody](t, w)
	assert.Equal(t, 2, got.Stars)
	assert.Equal(t, "Okay nets", got.Comment)

	t.Run("Other Users Cannot Edit", func(t *testing.T) {
		stranger := signup(t, "user")
		w := executeRequest(http.MethodPut, fmt.Sprintf("/api/reviews/%d", id), map[string]any{"stars": 1}, stranger.Token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Club Rating Reflects Review", func(t *testing.T) {
		w := executeRequest(http.MethodGet, fmt.Sprintf("/api/clubs/%d", clubID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		c := decode[struct {
			Rating       float64 `json:"rating"`
			ReviewsCount int64   `json:"reviews_count"`
		}](t, w)
		assert.Equal(t, 2.0, c.Rating)
		assert.Equal(t, int64(1), c.ReviewsCount)
	})
}

func TestDuplicateSignup(t *testing.T) {
	requireDB(t)

	email := gofakeit.Email()
	body := map[string]any{"full_name": gofakeit.Name(), "email": email, "password": "secret123"}

	w := executeRequest(http.MethodPost, "/api/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = executeRequest(http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	body["role"] = "admin"
	body["email"] = gofakeit.Email()
	w = executeRequest(http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	requireDB(t)

	w := executeRequest(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = executeRequest(http.MethodGet, "/", nil, "")
	assert.JSONEq(t, `{"message":"Club booking API is running"}`, w.Body.String())
}
