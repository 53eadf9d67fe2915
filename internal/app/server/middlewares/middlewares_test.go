package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log), ErrorHandler(log))
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(logger.NewWithZap(zap.New(core)))

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, seen, fields["request_id"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	r := newEngine(logger.NewNop())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(r, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestErrorHandler_RendersUnwrittenError(t *testing.T) {
	r := newEngine(logger.NewNop())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(errorx.ErrRecordNotFound)
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("already handled"))
		ginx.BadRequest(c, "bad input")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad input", resp.Meta.Message)
}

func TestRecovery(t *testing.T) {
	r := newEngine(logger.NewNop())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ginx.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Meta.Message)
}
