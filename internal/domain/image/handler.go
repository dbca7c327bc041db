package image

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imageapi/internal/pkg/response"
)

// Handler handles HTTP requests for image uploads and variations.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an image
// @Description Upload an image. Catalog resolutions below the original height are pre-generated.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /images [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "failed to read uploaded file")
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyUpload), errors.Is(err, ErrNotAnImage):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "failed to upload image")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": rec.ID})
}

// GetOriginal godoc
// @Summary Serve the original image
// @Tags Images
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404,500 {object} map[string]interface{}
// @Router /images/{id} [get]
func (h *Handler) GetOriginal(c *gin.Context) {
	path, err := h.service.GetOriginal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "image not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to retrieve image")
		return
	}

	c.File(path)
}

// GetVariation godoc
// @Summary Serve an image variation, materializing it on first request
// @Tags Images
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Param height path int true "Target height in pixels"
// @Success 200 {file} binary
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /images/{id}/variations/{height} [get]
func (h *Handler) GetVariation(c *gin.Context) {
	height, err := strconv.Atoi(c.Param("height"))
	if err != nil || height <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "height must be a positive integer")
		return
	}

	path, err := h.service.GetVariation(c.Request.Context(), c.Param("id"), height)
	if err != nil {
		switch {
		case errors.Is(err, ErrImageNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "image not found")
		case errors.Is(err, ErrHeightExceedsOriginal):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to retrieve image variation")
		}
		return
	}

	c.File(path)
}

// Delete godoc
// @Summary Delete an image, its variations, and its metadata
// @Tags Images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /images/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete image")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
