package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestApp(t *testing.T, limit int) (*fiber.App, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(RequestID())
	app.Use(FrameRateLimit(cache, limit))
	app.Post("/frames", func(c *fiber.Ctx) error {
		if Throttled(c) {
			return c.SendString("throttled")
		}
		return c.SendString("ok")
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, mr, cleanup
}

func post(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/frames", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
	return string(payload)
}

func TestFrameRateLimitMarksExcessRequests(t *testing.T) {
	app, mr, cleanup := setupTestApp(t, 2)
	defer cleanup()

	body := `{"untrustedData":{"fid":42},"trustedData":{"messageBytes":"0a"}}`
	for i := 0; i < 2; i++ {
		if got := post(t, app, body); got != "ok" {
			t.Fatalf("request %d: expected ok, got %s", i, got)
		}
	}
	if got := post(t, app, body); got != "throttled" {
		t.Fatalf("expected throttled, got %s", got)
	}

	if got := post(t, app, `{"untrustedData":{"fid":7},"trustedData":{"messageBytes":"0a"}}`); got != "ok" {
		t.Fatalf("other requester should not be throttled, got %s", got)
	}

	if ttl := mr.TTL(rateLimitPrefix + "fid:42"); ttl <= 0 {
		t.Fatalf("expected window expiry to be set, got %v", ttl)
	}
}

func TestFrameRateLimitRestoresMissingExpiry(t *testing.T) {
	app, mr, cleanup := setupTestApp(t, 2)
	defer cleanup()

	key := rateLimitPrefix + "fid:42"
	if err := mr.Set(key, "5"); err != nil {
		t.Fatalf("seed window: %v", err)
	}

	body := `{"untrustedData":{"fid":42},"trustedData":{"messageBytes":"0a"}}`
	if got := post(t, app, body); got != "throttled" {
		t.Fatalf("expected throttled, got %s", got)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window expiry to be restored, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if got := post(t, app, body); got != "ok" {
		t.Fatalf("expected new window after expiry, got %s", got)
	}
}

func TestFrameRateLimitFailsOpen(t *testing.T) {
	app, mr, cleanup := setupTestApp(t, 1)
	defer cleanup()

	mr.Close()
	body := `{"untrustedData":{"fid":42}}`
	for i := 0; i < 3; i++ {
		if got := post(t, app, body); got != "ok" {
			t.Fatalf("request %d: expected fail-open ok, got %s", i, got)
		}
	}
}

func TestFrameRateLimitWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Use(FrameRateLimit(nil, 1))
	app.Post("/frames", func(c *fiber.Ctx) error {
		if Throttled(c) {
			return c.SendString("throttled")
		}
		return c.SendString("ok")
	})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/frames", strings.NewReader("{}"))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		payload, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(payload) != "ok" {
			t.Fatalf("expected no-op limiter, got %s", payload)
		}
	}
}
