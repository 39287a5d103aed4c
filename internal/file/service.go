package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/storage"
)

type Service interface {
	// Upload validates and stores an image under the hinted folder.
	Upload(ctx context.Context, content io.Reader, folderHint string) (*Upload, error)
	// Open returns the stored file at a slash-separated path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type service struct {
	storage  storage.Storage
	imgProc  *storage.ImageProcessor
	maxBytes int64
}

func NewService(store storage.Storage, maxBytes int64) Service {
	return &service{
		storage:  store,
		imgProc:  storage.NewImageProcessor(),
		maxBytes: maxBytes,
	}
}

func (s *service) Upload(ctx context.Context, content io.Reader, folderHint string) (*Upload, error) {
	// Read one byte past the ceiling so oversize input is detectable.
	fileBytes, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if int64(len(fileBytes)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if len(fileBytes) == 0 {
		return nil, ErrFileRequired
	}

	format, err := s.imgProc.Format(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, ErrUnsupportedType
	}
	kind, ok := formats[format]
	if !ok {
		return nil, ErrUnsupportedType
	}

	folder := Folder(folderHint)
	name := uuid.New().String()
	up := &Upload{
		Path:          storagePath(folder, name+kind.Ext),
		ThumbnailPath: storagePath(folder, name+"_thumb.jpg"),
		ContentType:   kind.ContentType,
		Size:          int64(len(fileBytes)),
	}

	if err := s.storage.Save(ctx, up.Path, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), ThumbnailSize, ThumbnailSize)
	if err == nil {
		err = s.storage.Save(ctx, up.ThumbnailPath, thumb)
	}
	if err != nil {
		// The header decoded but the body did not; keep nothing half-written.
		_ = s.storage.Delete(ctx, up.Path)
		_ = s.storage.Delete(ctx, up.ThumbnailPath)
		slog.WarnContext(ctx, "thumbnail generation failed", slog.String("path", up.Path), slog.Any("error", err))
		return nil, ErrUnsupportedType
	}

	return up, nil
}

func (s *service) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.storage.Get(ctx, path)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return rc, nil
}
