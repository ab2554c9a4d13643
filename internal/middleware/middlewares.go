package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/pkg/logger"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type MiddlewareManager struct {
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

// Middleware manager constructor
func NewMiddlewareManager(cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, origins: origins, logger: logger}
}

func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		mw.logger.Infof("RequestID: %s, Method: %s, URI: %s, Status: %v, Size: %v, Time: %s",
			utils.GetRequestID(c),
			req.Method,
			req.URL,
			res.Status,
			res.Size,
			time.Since(start),
		)
		return err
	}
}

// HLSContentTypeMiddleware fixes the content type of playlist and segment
// files served from the uploads directory, which most static file servers
// would otherwise label generically.
func (mw *MiddlewareManager) HLSContentTypeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if len(path) > 5 && path[len(path)-5:] == ".m3u8" {
			c.Response().Before(func() {
				c.Response().Header().Set(echo.HeaderContentType, "application/vnd.apple.mpegurl")
			})
		} else if len(path) > 3 && path[len(path)-3:] == ".ts" {
			c.Response().Before(func() {
				c.Response().Header().Set(echo.HeaderContentType, "video/MP2T")
			})
		}
		return next(c)
	}
}
