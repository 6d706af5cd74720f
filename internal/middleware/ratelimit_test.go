package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
)

func limitCfg() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl:test",
	}
}

func TestTokenBucket_LocalFallback(t *testing.T) {
	e := newEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(limitCfg(), nil, nil))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send("10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	rec := send("10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", rec.Header().Get("X-RateLimit-Limit"))
	}

	if rec := send("10.0.0.2"); rec.Code != http.StatusOK {
		t.Errorf("other ip throttled: %d", rec.Code)
	}
}

func TestTokenBucket_Disabled(t *testing.T) {
	cfg := limitCfg()
	cfg.Enabled = false
	e := newEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, nil, nil))
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, rec.Code)
		}
	}
}

func TestLocalBuckets_RefillAndEviction(t *testing.T) {
	cfg := limitCfg()
	cfg.RefillInterval = time.Second
	cfg.TTL = time.Minute
	l := newLocalBuckets(cfg)
	t0 := time.Unix(1_700_000_000, 0)

	if !l.take("a", t0).allowed || !l.take("a", t0).allowed {
		t.Fatal("burst not available")
	}
	d := l.take("a", t0)
	if d.allowed || d.retry <= 0 {
		t.Fatalf("empty bucket: %+v", d)
	}
	if !l.take("a", t0.Add(time.Second)).allowed {
		t.Error("token not refilled after interval")
	}

	l.take("b", t0.Add(time.Second))
	if l.size() != 2 {
		t.Fatalf("size = %d", l.size())
	}
	l.take("c", t0.Add(2*time.Minute))
	if l.size() != 1 {
		t.Errorf("idle buckets not evicted, size = %d", l.size())
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "10.1.1.1:1"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/auth/login")

	cfg := limitCfg()
	cases := map[string]string{
		"ip":       "rl:test:ip:10.1.1.1",
		"ip_route": "rl:test:ip:10.1.1.1:route:POST /api/v1/auth/login",
		"user":     "rl:test:user:guest",
		"":         "rl:test:ip:10.1.1.1:user:guest:route:POST /api/v1/auth/login",
	}
	for strategy, want := range cases {
		cfg.KeyStrategy = strategy
		if got := buildRateKey(cfg, c); got != want {
			t.Errorf("%q: key = %q, want %q", strategy, got, want)
		}
	}
}
