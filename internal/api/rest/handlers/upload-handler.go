package handlers

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	pkgutils "github.com/SundayYogurt/scholarship_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxUploadSize  = 5 * 1024 * 1024 //5MB
	uploadFolder   = "scholarship/images"
	uploadMaxWidth = 1600
	uploadQuality  = 85
	uploadTimeout  = 20 * time.Second
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type UploadHandler struct {
	up     interfaces.Uploader
	logger *slog.Logger
}

// NewUploadHandler accepts a nil uploader; uploads then answer 503.
func NewUploadHandler(up interfaces.Uploader, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{up: up, logger: logger}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Normalised to JPEG (EXIF orientation applied, max width 1600) before storage.
// @Tags uploads
// @Security BearerAuth
// @Accept mpfd
// @Param file formData file true "jpg/jpeg/png/webp, max 5MB"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.APIError
// @Failure 503 {object} dto.APIError
// @Router /uploads/image [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	if h.up == nil {
		return utils.ResponseError(c, fiber.StatusServiceUnavailable, "image uploads are not configured")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return utils.ResponseError(c, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxUploadSize {
		return utils.ResponseError(c, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := pkgutils.ReadAllLimit(f, maxUploadSize)
	if errors.Is(err, pkgutils.ErrTooLarge) {
		return utils.ResponseError(c, fiber.StatusBadRequest, "file too large (max 5MB)")
	}
	if err != nil {
		return err
	}

	jpg, err := pkgutils.NormalizeToJPG(raw, uploadMaxWidth, uploadQuality)
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), uploadTimeout)
	defer cancel()

	res, err := h.up.UploadBytes(ctx, uploadFolder, uuid.NewString(), jpg)
	if err != nil {
		h.logger.Error("cloudinary upload failed", slog.Any("error", err))
		return utils.ResponseError(c, fiber.StatusBadGateway, "image upload failed")
	}

	return utils.ResponseSuccess(c, fiber.StatusOK, dto.UploadResponse{
		URL:      res.URL,
		PublicID: res.PublicID,
	})
}
