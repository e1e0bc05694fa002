package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/validator"
)

type staticUUID struct{ v string }

func (s staticUUID) Generate() string { return s.v }

type fakeJWT struct {
	claims jwt.Claims
	err    error
}

func (f fakeJWT) Generate(int64, string) (jwt.Token, error) { return jwt.Token{}, nil }
func (f fakeJWT) Verify(string) (jwt.Claims, error)         { return f.claims, f.err }

type fakeTokens struct {
	active map[string]bool
	err    error
}

func (f fakeTokens) IsActive(_ context.Context, jti string) (bool, error) {
	return f.active[jti], f.err
}

func testConfig(t *testing.T, yaml string) config.Config {
	t.Helper()
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func newTestRouter(t *testing.T, cfg Config) *Router {
	t.Helper()
	if cfg.Config == nil {
		cfg.Config = testConfig(t, "")
	}
	if cfg.UUID == nil {
		cfg.UUID = staticUUID{v: "generated-cid"}
	}
	if cfg.JWT == nil {
		cfg.JWT = fakeJWT{}
	}
	if cfg.Instrument == nil {
		cfg.Instrument = instrument.NewNoop()
	}
	if cfg.PublicEndpoints == nil {
		// Codec tests exercise public routes so the auth guard stays out of
		// the way; auth behavior has its own tests.
		cfg.PublicEndpoints = map[string]map[string]struct{}{
			http.MethodGet:    {"/things": {}, "/things/:id": {}, "/boom": {}, "/panic": {}},
			http.MethodPost:   {"/things": {}},
			http.MethodDelete: {"/things/:id": {}},
		}
	}
	return NewRouter(cfg)
}

func doRequest(ro *Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouterSuccessEnvelope(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.GET("/things", func(_ *Request) (any, error) {
		return map[string]string{"hello": "world"}, nil
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/things", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["success"] != true {
		t.Fatalf("success = %v", env["success"])
	}
	data, ok := env["data"].(map[string]any)
	if !ok || data["hello"] != "world" {
		t.Fatalf("data = %v", env["data"])
	}
	if _, present := env["errors"]; present {
		t.Fatal("success envelope must not carry errors")
	}
}

func TestRouterValidationErrorEnvelope(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.POST("/things", func(_ *Request) (any, error) {
		verr := validator.V10ValidationError{"name": {"The name field is required."}}
		return nil, goerror.NewInvalidInput(verr, "Validation error")
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodPost, "/things", strings.NewReader("{}")))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Fatalf("success = %v", env["success"])
	}
	errs, ok := env["errors"].(map[string]any)
	if !ok {
		t.Fatalf("errors = %v", env["errors"])
	}
	if _, ok := errs["name"]; !ok {
		t.Fatalf("expected errors.name, got %v", errs)
	}
	if _, present := env["data"]; present {
		t.Fatal("failure envelope must not carry data")
	}
}

func TestRouterHidesErrorDetailByDefault(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.GET("/boom", func(_ *Request) (any, error) {
		return nil, goerror.NewServer(errors.New("pq: syntax error in SQL"))
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "syntax error") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env["message"] != "Internal server error" {
		t.Fatalf("message = %v", env["message"])
	}
}

func TestRouterExposesErrorDetailWhenEnabled(t *testing.T) {
	cfg := testConfig(t, "app:\n  expose_error_detail: true\n")
	ro := newTestRouter(t, Config{Config: cfg})
	ro.GET("/boom", func(_ *Request) (any, error) {
		return nil, goerror.NewServer(errors.New("pq: syntax error in SQL"))
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/boom", nil))

	env := decodeEnvelope(t, rec)
	detail, ok := env["error"].(string)
	if !ok || !strings.Contains(detail, "syntax error") {
		t.Fatalf("error detail = %v", env["error"])
	}
}

func TestRouterNotFoundStatusMapping(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.GET("/things/:id", func(r *Request) (any, error) {
		if _, err := r.GetParamInt64("id"); err != nil {
			return nil, err
		}
		return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/things/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	rec = doRequest(ro, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for malformed id = %d, want 400", rec.Code)
	}

	rec = doRequest(ro, httptest.NewRequest(http.MethodGet, "/things/0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for non-positive id = %d, want 400", rec.Code)
	}
}

func TestRouterPanicRecovery(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.GET("/panic", func(_ *Request) (any, error) {
		panic("boom")
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic detail leaked: %s", rec.Body.String())
	}
}

// ctxRecorder keeps the context each log record was emitted with, keyed by
// the record message.
type ctxRecorder struct {
	mu   sync.Mutex
	ctxs map[string]context.Context
}

func (c *ctxRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (c *ctxRecorder) Handle(ctx context.Context, rec slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctxs[rec.Message] = ctx
	return nil
}

func (c *ctxRecorder) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *ctxRecorder) WithGroup(string) slog.Handler      { return c }

func TestRouterPanicLogCarriesCorrelationID(t *testing.T) {
	logs := &ctxRecorder{ctxs: map[string]context.Context{}}
	prev := slog.Default()
	slog.SetDefault(slog.New(logs))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ro := newTestRouter(t, Config{})
	ro.GET("/panic", func(_ *Request) (any, error) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(HeaderCorrelationID, "cid-123")
	doRequest(ro, req)

	logs.mu.Lock()
	ctx, ok := logs.ctxs["panic while handling request"]
	logs.mu.Unlock()
	if !ok {
		t.Fatal("expected a panic log entry")
	}
	if got := instrument.GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("correlation id on panic log = %q, want %q", got, "cid-123")
	}
}

func TestRouterAckEnvelope(t *testing.T) {
	ro := newTestRouter(t, Config{})
	ro.DELETE("/things/:id", func(_ *Request) (any, error) {
		return Ack("Thing deleted successfully"), nil
	})

	rec := doRequest(ro, httptest.NewRequest(http.MethodDelete, "/things/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["success"] != true {
		t.Fatalf("success = %v", env["success"])
	}
	if env["message"] != "Thing deleted successfully" {
		t.Fatalf("message = %v", env["message"])
	}
	if _, present := env["data"]; present {
		t.Fatalf("ack envelope must not carry data: %s", rec.Body.String())
	}
}

func TestRouterUnknownEndpoint(t *testing.T) {
	ro := newTestRouter(t, Config{})

	rec := doRequest(ro, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Fatalf("success = %v", env["success"])
	}
}
