package image

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"blog-post-service/internal/custom_errors"
	ports "blog-post-service/internal/domain/ports/output"
)

const UploadsDir = "uploads"

// FileStore keeps uploaded images under UploadsDir on an afero filesystem.
// References have the form "uploads/<uuid><ext>".
type FileStore struct {
	fs      afero.Fs
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewFileStore(fs afero.Fs, log ports.Logger, metrics ports.MetricsProvider) *FileStore {
	return &FileStore{fs: fs, log: log, metrics: metrics}
}

// NewOSFileStore roots the store at dir on the local disk.
func NewOSFileStore(dir string, log ports.Logger, metrics ports.MetricsProvider) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), dir), log, metrics), nil
}

func (s *FileStore) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := path.Join(UploadsDir, uuid.NewString()+extension(originalName))

	if err := s.fs.MkdirAll(UploadsDir, 0o755); err != nil {
		s.metrics.IncrementImageOperations("store", false)
		s.log.Error("Failed to create uploads dir", slog.String("error", err.Error()))
		return "", custom_errors.ErrImageStore
	}
	if err := afero.WriteFile(s.fs, ref, data, 0o644); err != nil {
		s.metrics.IncrementImageOperations("store", false)
		s.log.Error("Failed to write image", slog.String("ref", ref), slog.String("error", err.Error()))
		return "", custom_errors.ErrImageStore
	}

	s.metrics.IncrementImageOperations("store", true)
	s.log.Debug("Stored image", slog.String("ref", ref), slog.Int("size", len(data)))
	return ref, nil
}

func (s *FileStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	clean := path.Clean(ref)
	if !strings.HasPrefix(clean, UploadsDir+"/") {
		s.log.Warn("Refusing to delete image outside uploads", slog.String("ref", ref))
		return custom_errors.ErrImageDelete
	}

	exists, err := afero.Exists(s.fs, clean)
	if err != nil {
		s.metrics.IncrementImageOperations("delete", false)
		s.log.Error("Failed to stat image", slog.String("ref", ref), slog.String("error", err.Error()))
		return custom_errors.ErrImageDelete
	}
	if !exists {
		s.log.Debug("Image already gone", slog.String("ref", ref))
		return nil
	}

	if err := s.fs.Remove(clean); err != nil {
		s.metrics.IncrementImageOperations("delete", false)
		s.log.Error("Failed to delete image", slog.String("ref", ref), slog.String("error", err.Error()))
		return custom_errors.ErrImageDelete
	}

	s.metrics.IncrementImageOperations("delete", true)
	s.log.Debug("Deleted image", slog.String("ref", ref))
	return nil
}

func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext[min(1, len(ext)):] {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
