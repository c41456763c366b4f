package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// 10 per minute gives a burst of 1.
	r.Use(RateLimitMiddleware(10))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{name: "forwarded list", header: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, remote: "9.9.9.9:1", want: "1.2.3.4"},
		{name: "real ip", header: map[string]string{"X-Real-IP": " 4.3.2.1 "}, remote: "9.9.9.9:1", want: "4.3.2.1"},
		{name: "remote addr", remote: "9.9.9.9:1234", want: "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			c.Request = req

			if got := getClientIP(c); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
