package middleware

import (
	"net/http"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type MiddlewareManager struct {
	cfg    *config.Config
	logger logger.Logger
}

// Middleware manager constructor
func NewMiddlewareManager(cfg *config.Config, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, logger: logger}
}

// CORS allows the origins in Server.AllowOrigins, or any origin when none are configured.
func (mw *MiddlewareManager) CORS() echo.MiddlewareFunc {
	origins := mw.cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
		MaxAge:       300,
	})
}

// RequestLogger writes one line per request through the application logger.
func (mw *MiddlewareManager) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				mw.logger.Errorf("RequestID: %s, IP: %s, Method: %s, URI: %s, Status: %d, Latency: %s, Error: %v",
					v.RequestID, utils.GetIPAddress(c), v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond), v.Error)
				return nil
			}
			mw.logger.Infof("RequestID: %s, IP: %s, Method: %s, URI: %s, Status: %d, Latency: %s",
				v.RequestID, utils.GetIPAddress(c), v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond))
			return nil
		},
	})
}
