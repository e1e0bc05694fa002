// Package router wraps httprouter with the application handler signature,
// the response envelope codecs, and the standard middleware chain.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/uid"
)

// envelope is the uniform JSON response shape.
//
// Success implies Errors is absent; failure implies Data is absent. Error
// carries the underlying failure detail only when the expose flag is on,
// otherwise it stays null so internals never leak to clients.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   *string             `json:"error,omitempty"`
}

func failure(message string, fields map[string][]string, detail *string) envelope {
	return envelope{
		Success: false,
		Message: message,
		Errors:  fields,
		Error:   detail,
	}
}

// Handler is the application-style handler used by this router.
//
// It returns a response payload (that will be JSON encoded) or an error.
type Handler func(r *Request) (any, error)

// Ack is a success response carrying only a message, for operations (deletes)
// whose envelope has no data.
type Ack string

// Message returns the acknowledgement text.
func (a Ack) Message() string { return string(a) }

// TokenChecker reports whether an issued token (by its jti) is still active.
// The user module backs this with the access-token allow-list.
type TokenChecker interface {
	IsActive(ctx context.Context, jti string) (bool, error)
}

// Config holds dependencies required to build a Router.
type Config struct {
	// Config provides runtime configuration values.
	Config config.Config
	// UUID generates request correlation IDs.
	UUID uid.StringID
	// JWT validates and parses authentication tokens.
	JWT jwt.JWT
	// Tokens checks whether a verified token has been revoked.
	Tokens TokenChecker
	// Instrument provides tracing and metrics helpers.
	Instrument instrument.Instrumentation
	// PublicEndpoints lists method->route patterns that skip authentication.
	PublicEndpoints map[string]map[string]struct{}
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr         *httprouter.Router
	errorCodec func(ctx context.Context, w http.ResponseWriter, err error)
	encoder    func(ctx context.Context, w http.ResponseWriter, resp any)
	mws        []Middleware
}

// NewRouter builds the application router with the standard middleware chain:
// correlation ID, panic recovery, observability, and authentication.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, failure("Endpoint not found", nil, nil), http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, failure("Method not allowed", nil, nil), http.StatusMethodNotAllowed)
		}),
	}

	exposeDetail := func() bool {
		return cfg.Config != nil && cfg.Config.GetBool("app.expose_error_detail")
	}

	errorCodec := func(ctx context.Context, w http.ResponseWriter, err error) {
		var detail *string
		if exposeDetail() && err != nil {
			s := err.Error()
			detail = &s
		}

		var gerr *goerror.Error
		if !errors.As(err, &gerr) {
			slog.ErrorContext(ctx, "unclassified failure", "error", err)
			writeJSON(w, failure("Internal server error", nil, detail), http.StatusInternalServerError)
			return
		}

		status := gerr.StatusCode()
		switch {
		case status == http.StatusNotFound:
			slog.WarnContext(ctx, "resource not found", "error", gerr.String())
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(ctx, "request failed", "error", gerr.String())
		}

		writeJSON(w, failure(gerr.Msg(), gerr.Fields(), detail), status)
	}

	okCodec := func(_ context.Context, w http.ResponseWriter, resp any) {
		code := http.StatusOK
		if sc, ok := resp.(interface{ StatusCode() int }); ok {
			code = sc.StatusCode()
		}

		if code == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		msg := "Request processed successfully"
		if m, ok := resp.(interface{ Message() string }); ok {
			msg = m.Message()
		}
		if _, ok := resp.(Ack); ok {
			resp = nil
		}

		writeJSON(w, envelope{
			Success: true,
			Message: msg,
			Data:    resp,
		}, code)
	}

	return &Router{
		hr:         hr,
		errorCodec: errorCodec,
		encoder:    okCodec,
		// Correlation ID first so even the recoverer's panic log carries it.
		mws: []Middleware{
			middlewareCorrelationID(cfg.UUID),
			middlewareRecoverer,
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareAuthentication(cfg.JWT, cfg.Tokens, cfg.PublicEndpoints),
		},
	}
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// GETRaw registers a GET endpoint that writes directly to the response writer.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(http.MethodGet, path, Chain(h, append(r.mws, mws...)...))
}

// POST registers a POST endpoint using the application Handler signature.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// PUT registers a PUT endpoint using the application Handler signature.
func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPut, path, h, mws...)
}

// PATCH registers a PATCH endpoint using the application Handler signature.
func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPatch, path, h, mws...)
}

// DELETE registers a DELETE endpoint using the application Handler signature.
func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodDelete, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			r.errorCodec(re.Context(), w, err)
			return
		}
		r.encoder(re.Context(), w, resp)
	}), append(r.mws, mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}
