package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/manager/login", strings.NewReader(`{"username":" Manager "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "manager|1.2.3.4" {
		t.Fatalf("key want manager|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Manager") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	limiter := NewRateLimiter()
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 2, BlockSeconds: 120}

	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatalf("first request should pass")
	}
	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatalf("second request should pass")
	}
	allowed, wait := limiter.Allow("k", rule)
	if allowed {
		t.Fatalf("third request should be blocked")
	}
	if wait != 120 {
		t.Fatalf("wait want 120 got %d", wait)
	}

	// 其他 key 不受影响
	if allowed, _ := limiter.Allow("other", rule); !allowed {
		t.Fatalf("unrelated key should pass")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 1}

	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatalf("first request should pass")
	}
	if allowed, _ := limiter.Allow("k", rule); allowed {
		t.Fatalf("second request in window should be blocked")
	}

	// 封禁期过后窗口重置
	now = now.Add(61 * time.Second)
	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatalf("request after block expiry should pass")
	}
}
