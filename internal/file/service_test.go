package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T, maxBytes int64) Service {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(store, maxBytes)
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores Image And Thumbnail", func(t *testing.T) {
		svc := newTestService(t, 1<<20)

		up, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 900, 300)), "clubs")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(up.URL(), "/uploads/clubs/"))
		assert.True(t, strings.HasSuffix(up.URL(), ".png"))
		assert.True(t, strings.HasSuffix(up.ThumbnailURL(), "_thumb.jpg"))
		assert.Equal(t, "image/png", up.ContentType)

		rc, err := svc.Open(ctx, up.ThumbnailPath)
		require.NoError(t, err)
		defer rc.Close()
		thumb, format, err := image.Decode(rc)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, ThumbnailSize, thumb.Bounds().Dx())
	})

	t.Run("Unknown Folder Falls Back To Root", func(t *testing.T) {
		up, err := newTestService(t, 1<<20).Upload(ctx, bytes.NewReader(pngBytes(t, 10, 10)), "../etc")
		require.NoError(t, err)
		assert.NotContains(t, up.Path, "/")
	})

	t.Run("Too Large", func(t *testing.T) {
		data := pngBytes(t, 50, 50)
		_, err := newTestService(t, int64(len(data)-1)).Upload(ctx, bytes.NewReader(data), "clubs")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Not An Image", func(t *testing.T) {
		_, err := newTestService(t, 1<<20).Upload(ctx, strings.NewReader("GIF89a but not really"), "clubs")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Empty Body", func(t *testing.T) {
		_, err := newTestService(t, 1<<20).Upload(ctx, strings.NewReader(""), "clubs")
		assert.ErrorIs(t, err, ErrFileRequired)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 1<<20)

	_, err := svc.Open(ctx, "clubs/nope.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)

	up, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 4, 4)), "avatars")
	require.NoError(t, err)
	rc, err := svc.Open(ctx, up.Path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
