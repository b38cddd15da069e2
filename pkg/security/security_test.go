package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hit(r http.Handler) int {
	return hitFrom(r, "192.0.2.1:1234")
}

func hitFrom(r http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBurst(t *testing.T) {
	l := NewRateLimiter(3, time.Hour)
	defer l.Stop()
	r := limitedRouter(l)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}

func TestRateLimiterSetLimit(t *testing.T) {
	l := NewRateLimiter(1, time.Hour)
	defer l.Stop()
	r := limitedRouter(l)

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))

	l.SetLimit(5, time.Hour)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(r, "192.0.2.2:1234"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "192.0.2.2:1234"))
}
