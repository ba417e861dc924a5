// Package media stores images uploaded from the admin back-office.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultMaxImageSize is the upload limit when none is configured
const DefaultMaxImageSize int64 = 5 << 20

const imagePrefix = "images/"

// allowedImageTypes maps sniffed content types to stored file extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage stores uploaded objects and reports where they are served from
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	PublicURL(storageKey string) string
}

// UploadResponse is the location of a stored image
type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadService validates and stores product and category images
type UploadService struct {
	storage ObjectStorage
	maxSize int64
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploadService creates a new UploadService. A non-positive maxSize
// falls back to DefaultMaxImageSize.
func NewUploadService(storage ObjectStorage, maxSize int64, logger *zap.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &UploadService{storage: storage, maxSize: maxSize, logger: logger, now: time.Now}
}

// MaxSize returns the upload limit in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadImage reads an image, checks its real content type and stores it
// under images/YYYY/MM/<uuid>.<ext>.
func (s *UploadService) UploadImage(ctx context.Context, r io.Reader) (*UploadResponse, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, shared.NewValidationError("file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewValidationError("file exceeds the %d MB limit", s.maxSize>>20)
	}

	detected := mimetype.Detect(data)
	contentType := strings.ToLower(strings.SplitN(detected.String(), ";", 2)[0])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError("unsupported image type %s; allowed: jpeg, png, webp, gif", contentType)
	}

	now := s.now().UTC()
	key := path.Join("images", now.Format("2006"), now.Format("01"), uuid.New().String()+ext)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))

	return &UploadResponse{
		URL:         s.storage.PublicURL(key),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// DeleteImage removes a previously uploaded image
func (s *UploadService) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, imagePrefix) || strings.Contains(key, "..") {
		return shared.NewValidationError("key must reference an uploaded image")
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
