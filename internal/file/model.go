package file

import (
	"net/http"
	"path"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads/"

// ThumbnailSize bounds both edges of generated thumbnails.
const ThumbnailSize = 400

var (
	ErrFileRequired    = apperror.New(http.StatusBadRequest, "file is required")
	ErrFileTooLarge    = apperror.New(http.StatusBadRequest, "File too large")
	ErrUnsupportedType = apperror.New(http.StatusBadRequest, "Only jpeg, png or webp images are allowed")
	ErrNotFound        = apperror.New(http.StatusNotFound, "File not found")
)

// folders are the destination hints clients may ask for.
var folders = map[string]struct{}{
	"clubs":   {},
	"courts":  {},
	"avatars": {},
	"reviews": {},
}

// formats maps a sniffed image format to its content type and extension.
var formats = map[string]struct{ ContentType, Ext string }{
	"jpeg": {"image/jpeg", ".jpg"},
	"png":  {"image/png", ".png"},
	"webp": {"image/webp", ".webp"},
}

// Folder returns the storage folder for a client hint, or "" (the upload
// root) when the hint is not whitelisted.
func Folder(hint string) string {
	if _, ok := folders[hint]; ok {
		return hint
	}
	return ""
}

// Upload describes a stored image and its thumbnail.
type Upload struct {
	Path          string
	ThumbnailPath string
	ContentType   string
	Size          int64
}

// URL returns the public path of the original.
func (u *Upload) URL() string {
	return URLPrefix + u.Path
}

// ThumbnailURL returns the public path of the thumbnail.
func (u *Upload) ThumbnailURL() string {
	return URLPrefix + u.ThumbnailPath
}

func storagePath(folder, name string) string {
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
