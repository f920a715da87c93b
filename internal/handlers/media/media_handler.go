// internal/handlers/media/media_handler.go
package media

import (
	"errors"
	"io"
	"net/http"

	mediadomain "mediahub-service/internal/domain/media"
	"mediahub-service/internal/middleware"
	xerrors "mediahub-service/internal/pkg/errors"
	"mediahub-service/internal/pkg/response"
	service "mediahub-service/internal/service/media"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead leaves room for boundaries and part headers on top of the
// file ceiling when bounding the whole request body.
const multipartOverhead = 1 << 20

type MediaHandler struct {
	mediaService *service.MediaService
	logger       *zap.Logger
}

func NewMediaHandler(mediaService *service.MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		logger:       logger,
	}
}

// Upload handles POST /api/media: multipart body, single "file" field.
// The body is bounded before multipart parsing buffers anything, and the
// declared size is checked before the part is read, so an adversarial upload
// never occupies more than the ceiling in memory.
func (h *MediaHandler) Upload(c *gin.Context) {
	ownerID := middleware.MustGetUserID(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxFileSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Rejected(c, xerrors.CodeTooLarge, "File exceeds the 10 MB upload limit.")
			return
		}
		response.Error(c, http.StatusBadRequest, "A single 'file' field is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := service.Validate(contentType, fileHeader.Size); err != nil {
		h.writeRejection(c, err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Could not read uploaded file")
		return
	}

	record, err := h.mediaService.Create(c.Request.Context(), ownerID, &mediadomain.Upload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	})
	if err != nil {
		h.writeRejection(c, err)
		return
	}

	c.JSON(http.StatusCreated, record.ToView())
}

// List handles GET /api/media: the caller's records, newest first.
func (h *MediaHandler) List(c *gin.Context) {
	ownerID := middleware.MustGetUserID(c)

	records, err := h.mediaService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("media list failed", zap.String("owner_id", ownerID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Could not list media")
		return
	}

	c.JSON(http.StatusOK, mediadomain.ToViews(records))
}

// Delete handles DELETE /api/media/:id. A record owned by someone else and a
// missing id answer identically, so non-owners cannot probe for existence.
func (h *MediaHandler) Delete(c *gin.Context) {
	ownerID := middleware.MustGetUserID(c)
	recordID := c.Param("id")

	err := h.mediaService.Delete(c.Request.Context(), ownerID, recordID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "media not found")
			return
		}
		h.logger.Error("media delete failed", zap.String("record_id", recordID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Could not delete media")
		return
	}

	response.Message(c, http.StatusOK, "Media deleted successfully")
}

func (h *MediaHandler) writeRejection(c *gin.Context, err error) {
	if rej, ok := xerrors.AsRejection(err); ok {
		response.Rejected(c, rej.Code, rej.Message)
		return
	}

	response.Error(c, http.StatusInternalServerError, "Upload failed")
}
