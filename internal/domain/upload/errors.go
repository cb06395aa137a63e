package upload

import "errors"

var (
	ErrNotFound         = errors.New("upload not found")
	ErrForbidden        = errors.New("upload belongs to another user")
	ErrEmptyFile        = errors.New("empty image")
	ErrFileTooLarge     = errors.New("image larger than 5 MB")
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrStorage wraps failures of the image backend (disk or Cloudinary).
	ErrStorage = errors.New("image storage unavailable")
)
