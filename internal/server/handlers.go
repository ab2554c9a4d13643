package server

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	draftsHttp "github.com/draftstudio/media-backend/internal/drafts/delivery/http"
	draftsRepository "github.com/draftstudio/media-backend/internal/drafts/repository"
	draftsUsecase "github.com/draftstudio/media-backend/internal/drafts/usecase"
	mediaHttp "github.com/draftstudio/media-backend/internal/media/delivery/http"
	mediaRepository "github.com/draftstudio/media-backend/internal/media/repository"
	mediaUsecase "github.com/draftstudio/media-backend/internal/media/usecase"
	"github.com/draftstudio/media-backend/internal/middleware"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/internal/processing"
	"github.com/draftstudio/media-backend/pkg/storage/jsonstore"
	"github.com/draftstudio/media-backend/pkg/utils"
)

const maxCPUUsageForHealth = 90.0

func (s *Server) MapHandlers(e *echo.Echo) error {
	mediaStore := jsonstore.New[*models.MediaFile](s.cfg.Storage.MediaFile)
	draftsStore := jsonstore.New[*models.Draft](s.cfg.Storage.DraftsFile)

	mRepo := mediaRepository.NewMediaRepo(mediaStore)
	dRepo := draftsRepository.NewDraftRepo(draftsStore)

	mediaUC := mediaUsecase.NewMediaUseCase(s.cfg, mRepo, s.logger)
	draftUC := draftsUsecase.NewDraftUseCase(s.cfg, dRepo, s.logger)
	processor := processing.NewService(s.cfg, dRepo, s.blobStore, processing.NewSimTranscoder(), s.logger)

	mediaHandlers := mediaHttp.NewMediaHandler(mediaUC)
	draftHandlers := draftsHttp.NewDraftHandler(draftUC, processor)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	e.Use(echoMw.RequestID())
	e.Use(mw.RequestLoggerMiddleware)

	uploads := e.Group("/uploads")
	uploads.Use(mw.HLSContentTypeMiddleware)
	uploads.Static("/", filepath.Clean(s.cfg.Uploads.Dir))

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	mediaGroup := v1.Group("/media")
	draftGroup := v1.Group("/drafts")

	mediaHttp.MapMediaRoutes(mediaGroup, mediaHandlers)
	draftsHttp.MapDraftRoutes(draftGroup, draftHandlers)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		ok, usage := utils.CheckCPUUsage(maxCPUUsageForHealth)
		status := "OK"
		if !ok {
			status = "DEGRADED"
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    status,
			"cpu_usage": usage,
			"version":   s.cfg.Server.AppVersion,
		})
	})
	return nil
}
