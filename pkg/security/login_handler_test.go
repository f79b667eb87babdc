package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hopeIsCo0l/AnuTest/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	limiter := rate_limiter.NewRateLimiter(4, time.Minute)
	t.Cleanup(limiter.Stop)

	router := gin.New()
	NewLoginHandler(newDirectory(t), issuer, limiter, zap.NewNop()).RegisterRoutes(router)

	do := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.10:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do(`{"username":"admin","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"`)
	assert.Contains(t, w.Body.String(), `"name":"Factory Admin"`)
	assert.NotContains(t, w.Body.String(), "password")

	assert.Equal(t, http.StatusUnauthorized, do(`{"username":"admin","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`{"username":"admin"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(`{"username":"ghost","password":"x"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(`{"username":"admin","password":"secret"}`).Code)
}
