package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/draftstudio/media-backend/internal/media"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type mediaHandler struct {
	mediaUC media.UseCase
}

func NewMediaHandler(mediaUC media.UseCase) media.Handler {
	return &mediaHandler{
		mediaUC: mediaUC,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, media.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrInvalidType),
		errors.Is(err, media.ErrMissingFile),
		errors.Is(err, media.ErrTypeMismatch),
		errors.Is(err, media.ErrInvalidMetadata):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *mediaHandler) Upload() echo.HandlerFunc {
	return func(c echo.Context) error {
		mediaType := models.MediaType(c.Param("type"))
		if !mediaType.IsValid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid media type. Use image, audio, video, subtitle, or text."})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing file field 'file'."})
		}
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid form data. Expected multipart/form-data."})
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read uploaded file."})
		}

		input := &models.UploadInput{
			Type:     mediaType,
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Name:     c.FormValue("name"),
			Data:     data,
			Metadata: c.FormValue("metadata"),
		}

		rec, err := h.mediaUC.Upload(c.Request().Context(), input)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, rec)
	}
}

func (h *mediaHandler) GetData() echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := h.mediaUC.GetData(c.Request().Context())
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, data)
	}
}

func (h *mediaHandler) GetDataByType() echo.HandlerFunc {
	return func(c echo.Context) error {
		mediaType := models.MediaType(c.Param("type"))
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.mediaUC.ListByType(c.Request().Context(), mediaType, pagination)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *mediaHandler) GetByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		rec, err := h.mediaUC.GetByID(c.Request().Context(), c.Param("media_id"))
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, rec)
	}
}

func (h *mediaHandler) GetSize() echo.HandlerFunc {
	return func(c echo.Context) error {
		info, err := h.mediaUC.GetSize(c.Request().Context(), c.Param("media_id"))
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, info)
	}
}

func (h *mediaHandler) GetStats() echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := h.mediaUC.Stats(c.Request().Context())
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, stats)
	}
}

func (h *mediaHandler) Sync() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := h.mediaUC.Sync(c.Request().Context())
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (h *mediaHandler) Delete() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.mediaUC.Delete(c.Request().Context(), c.Param("media_id")); err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Media deleted successfully"})
	}
}
