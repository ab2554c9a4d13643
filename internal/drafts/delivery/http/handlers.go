package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/draftstudio/media-backend/internal/drafts"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/internal/processing"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type draftHandler struct {
	draftUC   drafts.UseCase
	processor *processing.Service
}

func NewDraftHandler(draftUC drafts.UseCase, processor *processing.Service) drafts.Handler {
	return &draftHandler{
		draftUC:   draftUC,
		processor: processor,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, processing.ErrAlreadyQueued):
		return http.StatusConflict
	case errors.Is(err, drafts.ErrEmptyDraft),
		errors.Is(err, drafts.ErrInvalidStatus),
		errors.Is(err, processing.ErrMissingVideoFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *draftHandler) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.DraftInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		}
		draft, err := h.draftUC.Create(c.Request().Context(), input)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, draft)
	}
}

func (h *draftHandler) List() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		filter := &drafts.ListFilter{
			Tag:    c.QueryParam("tag"),
			Status: models.DraftStatus(c.QueryParam("status")),
		}
		list, err := h.draftUC.List(c.Request().Context(), filter, pagination)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *draftHandler) GetByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		draft, err := h.draftUC.GetByID(c.Request().Context(), c.Param("draft_id"))
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, draft)
	}
}

func (h *draftHandler) Update() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.DraftInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		}
		draft, err := h.draftUC.Update(c.Request().Context(), c.Param("draft_id"), input)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, draft)
	}
}

func (h *draftHandler) Delete() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.draftUC.Delete(c.Request().Context(), c.Param("draft_id")); err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Draft deleted successfully"})
	}
}

func (h *draftHandler) StartProcessing() echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg := models.ProcessingConfig{}
		if err := c.Bind(&cfg); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		}
		draft, err := h.processor.Enqueue(c.Request().Context(), c.Param("draft_id"), cfg)
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, draft.Processing)
	}
}

func (h *draftHandler) GetProcessingStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		draft, err := h.draftUC.GetByID(c.Request().Context(), c.Param("draft_id"))
		if err != nil {
			return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
		}
		if draft.Processing == nil {
			return c.JSON(http.StatusOK, map[string]models.ProcessingStatus{"status": models.ProcessingStatusPending})
		}
		return c.JSON(http.StatusOK, draft.Processing)
	}
}

func (h *draftHandler) RunQueue() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.processor.RunWorker(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, h.processor.GetQueueStatus())
	}
}

func (h *draftHandler) GetQueueStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, h.processor.GetQueueStatus())
	}
}

func (h *draftHandler) ClearQueue() echo.HandlerFunc {
	return func(c echo.Context) error {
		h.processor.ClearQueue()
		return c.JSON(http.StatusOK, map[string]string{"message": "Queue cleared successfully"})
	}
}
