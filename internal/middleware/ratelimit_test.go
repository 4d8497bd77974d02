package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-ticket-desk/internal/config"
)

func limitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func TestTokenBucket_BlocksWhenEmpty(t *testing.T) {
	_, rdb := newRedis(t)
	e := echo.New()
	e.POST("/v1/screenings/:id/tickets", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, NewTokenBucket(limitConfig(), rdb))

	first := serve(e, http.MethodPost, "/v1/screenings/1/tickets")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, serve(e, http.MethodPost, "/v1/screenings/2/tickets").Code)

	blocked := serve(e, http.MethodPost, "/v1/screenings/3/tickets")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "too_many_requests")
}

func TestTokenBucket_SeparateRoutes(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := limitConfig()
	cfg.Capacity = 1
	e := echo.New()
	mw := NewTokenBucket(cfg, rdb)
	e.POST("/v1/screenings/:id/tickets", func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, mw)
	e.DELETE("/v1/tickets/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)

	assert.Equal(t, http.StatusCreated, serve(e, http.MethodPost, "/v1/screenings/1/tickets").Code)
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodDelete, "/v1/tickets/1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/v1/screenings/1/tickets").Code)
}

func TestTokenBucket_FailsOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	e := echo.New()
	e.POST("/v1/screenings/:id/tickets", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, NewTokenBucket(limitConfig(), rdb))

	mr.Close()
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusCreated, serve(e, http.MethodPost, "/v1/screenings/1/tickets").Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptestRequest("/v1/tickets/7")
	req.Method = http.MethodDelete
	req.RemoteAddr = "10.0.0.9:5555"
	c := e.NewContext(req, nil)
	c.SetPath("/v1/tickets/:id")

	cfg := limitConfig()
	assert.Equal(t, "rl:ip:10.0.0.9:route:DELETE /v1/tickets/:id", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.9", buildRateKey(cfg, c))
	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:DELETE /v1/tickets/:id", buildRateKey(cfg, c))
}
