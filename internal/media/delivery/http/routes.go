package http

import (
	"github.com/labstack/echo/v4"

	"github.com/draftstudio/media-backend/internal/media"
)

func MapMediaRoutes(mediaGroup *echo.Group, h media.Handler) {
	mediaGroup.POST("/upload/:type", h.Upload())
	mediaGroup.GET("/data", h.GetData())
	mediaGroup.GET("/data/:type", h.GetDataByType())
	mediaGroup.GET("/stats", h.GetStats())
	mediaGroup.POST("/sync", h.Sync())
	mediaGroup.GET("/:media_id", h.GetByID())
	mediaGroup.GET("/:media_id/size", h.GetSize())
	mediaGroup.DELETE("/:media_id", h.Delete())
}
