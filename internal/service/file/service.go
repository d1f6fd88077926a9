package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gajihub/hr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// ErrStorageUnavailable is returned when the object store cannot take
// or serve an object. Callers abort before any database write.
var ErrStorageUnavailable = errors.New("object storage unavailable")

// Service wraps the object store with the upload policy: a deadline per
// upload and generated object keys.
type Service struct {
	store   storage.FileStorage
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(store storage.FileStorage, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{store: store, timeout: timeout, logger: logger}
}

// Upload stores data under folder with a generated key preserving the
// original extension and returns the object URL.
func (s *Service) Upload(ctx context.Context, data []byte, folder, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	url, err := s.store.Put(ctx, data, folder, key)
	if err != nil {
		s.logger.Error("object upload failed", "folder", folder, "error", err)
		return "", ErrStorageUnavailable
	}
	return url, nil
}

// Delete removes a stored object. Failures are logged, not returned;
// deletes run best-effort after the owning row is gone.
func (s *Service) Delete(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil {
		s.logger.Error("object delete failed", "url", url, "error", err)
	}
}
