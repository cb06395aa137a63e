package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/pagination"
)

const MaxFileSize = 5 * 1024 * 1024 // 5 MB

// AllowedMimeTypes lists the sniffed image types we accept.
var AllowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Service struct {
	repo    uploadStore
	storage Storage
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(repo uploadStore, storage Storage, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, storage: storage, log: logger.OrDiscard(log), now: time.Now}
}

func (s *Service) Backend() Backend { return s.storage.Backend() }

// Upload checks size and sniffed type, stores the image and records it.
func (s *Service) Upload(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*Upload, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.store(ctx, userID, fileHeader.Filename, file)
}

func (s *Service) store(ctx context.Context, userID int64, filename string, file io.Reader) (*Upload, error) {
	// read one byte past the limit to catch lying Content-Length
	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	mimeType := strings.Split(http.DetectContentType(data), ";")[0]
	ext, ok := AllowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	id := uuid.New().String()
	stored, err := s.storage.Put(ctx, id+"_"+sanitizeName(filename), ext, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	u := &Upload{
		ID:           id,
		UserID:       userID,
		OriginalName: filepath.Base(filename),
		Backend:      s.storage.Backend(),
		PublicID:     stored.PublicID,
		URL:          stored.URL,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// rollback stored file on DB error
		if rerr := s.storage.Remove(ctx, stored.PublicID); rerr != nil {
			s.log.WithError(rerr).WithField("public_id", stored.PublicID).Warn("orphan upload not removed")
		}
		return nil, fmt.Errorf("failed to save upload record: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"upload_id": u.ID,
		"user_id":   userID,
		"backend":   u.Backend,
		"size":      u.Size,
	}).Info("image uploaded")
	return u, nil
}

// Delete removes the stored file and the record. Admins may delete any
// upload.
func (s *Service) Delete(ctx context.Context, id string, userID int64, isAdmin bool) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if u.Backend == s.storage.Backend() {
		if err := s.storage.Remove(ctx, u.PublicID); err != nil {
			s.log.WithError(err).WithField("upload_id", id).Warn("stored file not removed")
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64, p pagination.Params) ([]Upload, int64, error) {
	return s.repo.ListByUser(ctx, userID, p)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "image"
	}
	return name
}
