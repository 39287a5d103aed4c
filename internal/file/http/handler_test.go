package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/club-booking-backend/internal/file"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/storage"
)

func setupRouter(t *testing.T, maxBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	h := NewHandler(file.NewService(store, maxBytes), maxBytes)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), h, func(c *gin.Context) { c.Next() })
	RegisterFileServer(r, h)
	return r
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 20, 20))))

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "court.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadAndServe(t *testing.T) {
	r := setupRouter(t, 1<<20)

	body, contentType := multipartImage(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload?folder=courts", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, "/uploads/courts/")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.ThumbnailURL, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadErrors(t *testing.T) {
	t.Run("Missing File Field", func(t *testing.T) {
		r := setupRouter(t, 1<<20)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("x=1"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Too Large", func(t *testing.T) {
		r := setupRouter(t, 10)
		body, contentType := multipartImage(t)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"File too large"}`, w.Body.String())
	})

	t.Run("Missing Stored File", func(t *testing.T) {
		r := setupRouter(t, 1<<20)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/clubs/none.png", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
