package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/api/metrics"
	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

type UploadHandler struct {
	service ports.UploadService
}

func NewUploadHandler(service ports.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload handles POST /api/uploads.
//
// @Summary      Upload a product image
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body      uploadRequest  true  "Data URI or base64 image"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	var req uploadRequest
	if err := bind(c, &req); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	url, err := h.service.Upload(c.Request().Context(), ports.UploadImageInput{
		Data:     req.Data,
		Filename: req.Filename,
	})
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrValidation) {
			result = "rejected"
		}
		metrics.ImageUploadsTotal.WithLabelValues(result).Inc()
		return err
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
