package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeStore allows the first limit hits, or fails when err is set.
type fakeStore struct {
	hits   int
	err    error
	limit  int
	window time.Duration
}

func (f *fakeStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.limit, f.window = limit, window
	if f.err != nil {
		return false, f.err
	}
	f.hits++
	return f.hits <= limit, nil
}

func (f *fakeStore) Close() error { return nil }

func newApp(m Middleware) *fiber.App {
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())
	app.Get("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app
}

func status(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	return resp.StatusCode
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	app := newApp(New(quietLogger(), RateLimitConfig{RequestsPerSecond: 100, Burst: 100}, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	if err != nil {
		t.Fatal(err)
	}
	id := resp.Header.Get(RequestIDKey)
	if len(id) != 26 {
		t.Errorf("Expected a ULID request id, got %q", id)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != id {
		t.Errorf("Expected handler to see %q, got %q", id, body)
	}

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set(RequestIDKey, "client-id")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(RequestIDKey); got != "client-id" {
		t.Errorf("Expected client id to be kept, got %q", got)
	}
}

func TestLocalRateLimiter(t *testing.T) {
	app := newApp(New(quietLogger(), RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}, nil))

	for i := 0; i < 2; i++ {
		if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, got)
		}
	}
	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", got)
	}
}

func TestSharedRateLimiter(t *testing.T) {
	store := &fakeStore{}
	app := newApp(New(quietLogger(), RateLimitConfig{RequestsPerSecond: 1000, Burst: 1}, store))

	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusOK {
		t.Fatalf("Expected 200, got %d", got)
	}
	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusTooManyRequests {
		t.Errorf("Expected 429 from shared store, got %d", got)
	}
}

func TestSharedWindowMatchesLocalRate(t *testing.T) {
	tests := []struct {
		name   string
		rps    float64
		burst  int
		window time.Duration
	}{
		{"defaults", 5, 10, 2 * time.Second},
		{"one per second", 1, 1, time.Second},
		{"fractional rate", 0.5, 3, 6 * time.Second},
		{"very fast", 1e9, 1, time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			app := newApp(New(quietLogger(), RateLimitConfig{RequestsPerSecond: tt.rps, Burst: tt.burst}, store))

			if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusOK {
				t.Fatalf("Expected 200, got %d", got)
			}
			if store.limit != tt.burst {
				t.Errorf("Expected limit %d, got %d", tt.burst, store.limit)
			}
			if store.window != tt.window {
				t.Errorf("Expected window %s, got %s", tt.window, store.window)
			}
		})
	}
}

func TestSharedRateLimiterFallsBackToLocal(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	app := newApp(New(quietLogger(), RateLimitConfig{RequestsPerSecond: 1000, Burst: 5}, store))

	if got := status(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil)); got != http.StatusOK {
		t.Errorf("Expected local limiter to allow, got %d", got)
	}
}

func TestSummarizeRequestBody(t *testing.T) {
	if got := summarizeRequestBody("multipart/form-data; boundary=x", []byte("--x")); got != "[multipart body]" {
		t.Errorf("Unexpected summary %q", got)
	}
	if got := summarizeRequestBody("application/json", []byte(`{"a":1}`)); got != `{"a":1}` {
		t.Errorf("Unexpected summary %q", got)
	}
	if got := summarizeRequestBody("text/plain", []byte("hello")); got != "[non-JSON body]" {
		t.Errorf("Unexpected summary %q", got)
	}
}
