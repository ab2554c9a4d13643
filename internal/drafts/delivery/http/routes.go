package http

import (
	"github.com/labstack/echo/v4"

	"github.com/draftstudio/media-backend/internal/drafts"
)

func MapDraftRoutes(draftGroup *echo.Group, h drafts.Handler) {
	draftGroup.GET("", h.List())
	draftGroup.POST("", h.Create())

	// Queue routes are registered before the parameterized ones so
	// "process" is never captured as a draft id.
	draftGroup.POST("/process/run", h.RunQueue())
	draftGroup.GET("/process/queue", h.GetQueueStatus())
	draftGroup.DELETE("/process/queue", h.ClearQueue())

	draftGroup.GET("/:draft_id", h.GetByID())
	draftGroup.PUT("/:draft_id", h.Update())
	draftGroup.DELETE("/:draft_id", h.Delete())
	draftGroup.POST("/:draft_id/process", h.StartProcessing())
	draftGroup.GET("/:draft_id/process", h.GetProcessingStatus())
}
