package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func preflight(e *echo.Echo, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newTestEcho(cfg *config.Config) *echo.Echo {
	mw := NewMiddlewareManager(cfg, logger.NewNopLogger())
	e := echo.New()
	e.Use(mw.RequestLogger())
	e.Use(mw.CORS())
	e.POST("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	return e
}

func TestCORSUsesConfiguredOrigins(t *testing.T) {
	cfg := config.Default()
	cfg.Server.AllowOrigins = []string{"http://localhost:5173"}
	e := newTestEcho(cfg)

	rec := preflight(e, "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = preflight(e, "http://evil.example")
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	e := newTestEcho(config.Default())

	rec := preflight(e, "http://anywhere.example")
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
