package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitzone/internal/pkg/pagination"
	"fitzone/internal/pkg/request"
	"fitzone/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an image
// @Description Stores an image (max 5 MB) and returns its public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image to upload"
// @Router /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image must be 5 MB or smaller")
			return
		}
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No image provided")
		return
	}

	u, err := h.service.Upload(c.Request.Context(), request.UserID(c), fileHeader)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) ListMy(c *gin.Context) {
	p := pagination.FromQuery(c)
	uploads, total, err := h.service.ListByUser(c.Request.Context(), request.UserID(c), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, uploads, p.Meta(total))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id, request.UserID(c), request.IsAdmin(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image must be 5 MB or smaller")
	case errors.Is(err, ErrUnsupportedImage):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only JPEG, PNG, GIF and WebP images are allowed")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
	case errors.Is(err, ErrStorage):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "STORAGE_UNAVAILABLE", "Image storage is unavailable, try again later")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this upload")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed")
	}
}
