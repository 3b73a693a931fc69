package api

import (
	"net/http"
	"runtime/debug"

	"github.com/derob357/sisters-promise/internal/pkg/httputil"
	"github.com/derob357/sisters-promise/internal/pkg/logger"
)

// maxBodyBytes is the request payload ceiling. The largest legitimate
// payload (a full contact submission) is well under 2 KB.
const maxBodyBytes = 10 * 1024

// securityHeaders attaches the defensive response headers to every
// response, API and preflight alike.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// limitBody rejects oversized payloads before parsing. A declared
// Content-Length over the cap is refused outright; bodies without a
// declared length are capped by MaxBytesReader so the JSON decoder fails
// at the ceiling instead of buffering without bound.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxBodyBytes {
			httputil.Error(w, http.StatusRequestEntityTooLarge, "request payload too large")
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverer is the terminal catch for anything escaping a handler. It
// replaces chi's text/plain Recoverer so even panics answer with the
// standard JSON envelope; the panic value and stack never leave the
// process unless development mode is on.
func recoverer(development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				if development {
					httputil.ErrorDetail(w, http.StatusInternalServerError,
						"internal server error", toString(rec))
					return
				}
				httputil.Error(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unexpected failure"
}
