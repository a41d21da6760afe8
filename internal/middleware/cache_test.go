package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cartacaixa/filmlog/internal/config"
)

func newCacheEnv(t *testing.T) (*miniredis.Miniredis, *redis.Client, config.CacheConfig) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cfg := config.CacheConfig{
		Enabled:      true,
		TTL:          30 * time.Second,
		Prefix:       "cache-test",
		MaxBodyBytes: 1 << 20,
	}
	return mr, rdb, cfg
}

// countingHandler serves a fixed JSON body and counts how often the handler
// actually ran, so a cache hit is observable as an unchanged count.
type countingHandler struct {
	calls int
	body  string
}

func (h *countingHandler) handle(c echo.Context) error {
	h.calls++
	return c.JSONBlob(http.StatusOK, []byte(h.body))
}

func doCached(t *testing.T, e *echo.Echo, mw echo.MiddlewareFunc, h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(req.URL.Path)
	if err := mw(h)(c); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return rec
}

func TestResponseCacheServesSecondRequestFromRedis(t *testing.T) {
	_, rdb, cfg := newCacheEnv(t)
	e := echo.New()
	h := &countingHandler{body: `{"status":true,"list":[]}`}
	mw := ResponseCache(cfg, rdb)

	first := doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	if first.Code != http.StatusOK || first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first request: code=%d X-Cache=%q, want 200 MISS", first.Code, first.Header().Get("X-Cache"))
	}

	second := doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	if second.Code != http.StatusOK || second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second request: code=%d X-Cache=%q, want 200 HIT", second.Code, second.Header().Get("X-Cache"))
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
	}
	if h.calls != 1 {
		t.Fatalf("handler ran %d times, want 1", h.calls)
	}
}

func TestResponseCacheKeysIncludeQueryString(t *testing.T) {
	_, rdb, cfg := newCacheEnv(t)
	e := echo.New()
	h := &countingHandler{body: `{"status":true,"list":[]}`}
	mw := ResponseCache(cfg, rdb)

	doCached(t, e, mw, h.handle, http.MethodGet, "/api/films?limite=5&pagina=1")
	doCached(t, e, mw, h.handle, http.MethodGet, "/api/films?limite=5&pagina=2")
	if h.calls != 2 {
		t.Fatalf("different query strings shared a cache entry: handler ran %d times, want 2", h.calls)
	}
}

func TestResponseCacheIgnoresNonGET(t *testing.T) {
	_, rdb, cfg := newCacheEnv(t)
	e := echo.New()
	h := &countingHandler{body: `{"status":true}`}
	mw := ResponseCache(cfg, rdb)

	doCached(t, e, mw, h.handle, http.MethodPost, "/api/films")
	doCached(t, e, mw, h.handle, http.MethodPost, "/api/films")
	if h.calls != 2 {
		t.Fatalf("POST was cached: handler ran %d times, want 2", h.calls)
	}
}

func TestResponseCacheSkipsNon200(t *testing.T) {
	_, rdb, cfg := newCacheEnv(t)
	e := echo.New()
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"status": false, "error": "Filme não encontrado!"})
	}
	mw := ResponseCache(cfg, rdb)

	doCached(t, e, mw, h, http.MethodGet, "/api/films/999")
	rec := doCached(t, e, mw, h, http.MethodGet, "/api/films/999")
	if calls != 2 {
		t.Fatalf("404 was cached: handler ran %d times, want 2", calls)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second request code = %d, want 404", rec.Code)
	}
}

func TestResponseCacheDisabledIsPassThrough(t *testing.T) {
	_, rdb, cfg := newCacheEnv(t)
	cfg.Enabled = false
	e := echo.New()
	h := &countingHandler{body: `{"status":true}`}
	mw := ResponseCache(cfg, rdb)

	doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	rec := doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	if h.calls != 2 {
		t.Fatalf("disabled cache still served a hit: handler ran %d times", h.calls)
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Fatalf("disabled cache set X-Cache=%q", rec.Header().Get("X-Cache"))
	}
}

func TestResponseCacheNilClientIsPassThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Second, Prefix: "x"}
	e := echo.New()
	h := &countingHandler{body: `{"status":true}`}
	mw := ResponseCache(cfg, nil)

	doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	doCached(t, e, mw, h.handle, http.MethodGet, "/api/films")
	if h.calls != 2 {
		t.Fatalf("nil client still served a hit: handler ran %d times", h.calls)
	}
}
