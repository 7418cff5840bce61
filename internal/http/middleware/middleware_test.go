package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"live-sports-service/internal/metrics"
)

func serveWithLogging(t *testing.T, recorder *metrics.Recorder, incomingID string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/live", nil)
	if incomingID != "" {
		req.Header.Set("X-Request-ID", incomingID)
	}
	rr := httptest.NewRecorder()
	Logging(nil, recorder)(handler).ServeHTTP(rr, req)
	return rr
}

func TestLoggingGeneratesRequestID(t *testing.T) {
	rr := serveWithLogging(t, nil, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	id := rr.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected a generated request id")
	}
	if matched, _ := regexp.MatchString(`^[0-9a-f]{16}$`, id); !matched {
		t.Fatalf("expected 8 random bytes as hex, got %q", id)
	}
}

func TestLoggingKeepsValidIncomingRequestID(t *testing.T) {
	rr := serveWithLogging(t, nil, "client-abc_123", func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "client-abc_123" {
			t.Fatalf("expected the incoming id in context, got %q", got)
		}
	})
	if got := rr.Header().Get("X-Request-ID"); got != "client-abc_123" {
		t.Fatalf("expected the incoming id echoed, got %q", got)
	}
}

func TestLoggingRejectsUnsafeRequestID(t *testing.T) {
	for _, bad := range []string{"bad id!", "a\nb", strings.Repeat("x", 65)} {
		rr := serveWithLogging(t, nil, bad, func(w http.ResponseWriter, r *http.Request) {})
		if got := rr.Header().Get("X-Request-ID"); got == bad || got == "" {
			t.Fatalf("expected a replacement for %q, got %q", bad, got)
		}
	}
}

func TestLoggingRecordsMetrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	serveWithLogging(t, recorder, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestResponseWriterDefaultsToOK(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rr, status: http.StatusOK}
	_, _ = ww.Write([]byte("ok"))
	if ww.status != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", ww.status)
	}

	ww.WriteHeader(http.StatusBadGateway)
	if ww.status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", ww.status)
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/api/live":  "/api/live",
		"/health":    "/health",
		"/ready":     "/ready",
		"/admin":     "other",
		"/api/other": "other",
	}
	for path, want := range cases {
		if got := normalizePath(path); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFallbackRequestIDIsNonEmpty(t *testing.T) {
	if fallbackRequestID() == "" {
		t.Fatal("expected a fallback id")
	}
	if generateRequestID() == "" {
		t.Fatal("expected a generated id")
	}
}
