package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stackfood/customers/internal/interfaces/http/router"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error { return p.err }

func newSystemEngine(p Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router.NewRouter(engine).
		Register(NewSystemHandler(p, "stackfood-customers", "test")).
		Setup()
	return engine
}

func TestSystemHandler_Ping(t *testing.T) {
	engine := newSystemEngine(&stubPinger{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestSystemHandler_Health_DatabaseUp(t *testing.T) {
	engine := newSystemEngine(&stubPinger{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"up"`)
}

func TestSystemHandler_Health_DatabaseDown(t *testing.T) {
	engine := newSystemEngine(&stubPinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"down"`)
}
