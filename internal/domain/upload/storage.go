package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Stored is where a file ended up.
type Stored struct {
	PublicID string
	URL      string
}

// Storage keeps image bytes somewhere reachable by URL.
type Storage interface {
	Backend() Backend
	Put(ctx context.Context, name, ext string, r io.Reader) (*Stored, error)
	Remove(ctx context.Context, publicID string) error
}

// LocalStorage writes files under baseDir/YYYY/MM/DD, served at urlBase.
type LocalStorage struct {
	baseDir string
	urlBase string
	now     func() time.Time
}

func NewLocalStorage(baseDir, urlBase string) *LocalStorage {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlBase == "" {
		urlBase = "/static/uploads"
	}
	return &LocalStorage{baseDir: baseDir, urlBase: strings.TrimRight(urlBase, "/"), now: time.Now}
}

func (s *LocalStorage) Backend() Backend { return BackendLocal }

func (s *LocalStorage) BaseDir() string { return s.baseDir }

func (s *LocalStorage) Put(_ context.Context, name, ext string, r io.Reader) (*Stored, error) {
	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	relPath := relDir + "/" + name + ext
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return &Stored{PublicID: relPath, URL: s.urlBase + "/" + relPath}, nil
}

func (s *LocalStorage) Remove(_ context.Context, publicID string) error {
	clean := filepath.Clean(filepath.FromSlash(publicID))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid upload path %q", publicID)
	}
	err := os.Remove(filepath.Join(s.baseDir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorage) Backend() Backend { return BackendCloudinary }

func (s *CloudinaryStorage) Put(ctx context.Context, name, _ string, r io.Reader) (*Stored, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: name,
		Folder:   s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &Stored{PublicID: res.PublicID, URL: res.SecureURL}, nil
}

func (s *CloudinaryStorage) Remove(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}
