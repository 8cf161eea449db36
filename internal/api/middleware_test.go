package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitByIP(rate.Every(time.Hour), 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("rejects once the burst is spent", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
		assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	})

	t.Run("buckets are per client", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
	})
}
