package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"whatsapp-media-gateway/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store writes downloaded media to a directory and records each file in the
// database. Files are written once and never read back by the gateway.
type Store struct {
	dir string
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(dir string, db *gorm.DB, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &Store{dir: dir, db: db, log: log}, nil
}

// Save writes the image bytes under a unique timestamp-derived filename and
// returns the full path. The extension comes from the mime type.
func (s *Store) Save(mediaID string, data []byte, mimeType string) (string, error) {
	filename := fmt.Sprintf("image_%d_%s.%s", time.Now().Unix(), uuid.NewString()[:8], extensionFor(mimeType))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	record := models.MediaFile{
		MediaID:  mediaID,
		Filename: filename,
		MimeType: mimeType,
		FileSize: int64(len(data)),
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.log.Error("Failed to record media file", zap.String("filename", filename), zap.Error(err))
	}

	s.log.Info("Image saved", zap.String("filename", filename), zap.Int("size", len(data)))
	return path, nil
}

func extensionFor(mimeType string) string {
	if _, ext, found := strings.Cut(mimeType, "/"); found && ext != "" {
		return ext
	}
	return "bin"
}
