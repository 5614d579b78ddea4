package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newLoggedHandler(buf *bytes.Buffer, status int) http.Handler {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	mw := NewRequestLoggingMiddleware(logger)
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
}

func TestRequestLoggingMiddleware_LogsBasicInfo(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("GET", "/contato", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	for _, want := range []string{"GET", "/contato", "200", "duration"} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("log should contain %q, got: %s", want, logOutput)
		}
	}
}

func TestRequestLoggingMiddleware_LogsClientIP(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("POST", "/checkout/next", nil)
	req.RemoteAddr = "10.0.0.1:8080"
	req.Header.Set("X-Forwarded-For", "203.0.113.195")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	// Should log the real client IP from X-Forwarded-For
	if !strings.Contains(buf.String(), "203.0.113.195") {
		t.Errorf("log should contain client IP from X-Forwarded-For, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_WarnsOnServerError(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusInternalServerError)

	req := httptest.NewRequest("POST", "/checkout/submit", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	if !strings.Contains(logOutput, "500") {
		t.Errorf("log should contain 500 status, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "level=WARN") && !strings.Contains(logOutput, "level=ERROR") {
		t.Errorf("5xx should log at WARN/ERROR level, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_RedactsSensitiveQueryParams(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("GET", "/checkout/summary?token=secrettoken123", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	if strings.Contains(logOutput, "secrettoken123") {
		t.Errorf("log should NOT contain sensitive token value, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "/checkout/summary") {
		t.Errorf("log should contain path, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_RedactsContactParams(t *testing.T) {
	var buf bytes.Buffer
	wrapped := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest("GET", "/contato?whatsapp=93992273046&email=ana%40exemplo.com.br&utm_source=instagram", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	for _, leaked := range []string{"93992273046", "ana%40exemplo.com.br"} {
		if strings.Contains(logOutput, leaked) {
			t.Errorf("log should NOT contain contact data %q, got: %s", leaked, logOutput)
		}
	}
	// Harmless params survive so traffic sources stay attributable.
	if !strings.Contains(logOutput, "utm_source=instagram") {
		t.Errorf("log should keep utm_source, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_PassesRequestThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewRequestLoggingMiddleware(logger)

	handlerCalled := false
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("response body"))
	}))

	req := httptest.NewRequest("POST", "/checkout/open", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if !handlerCalled {
		t.Error("handler should have been called")
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	if rec.Header().Get("X-Custom") != "value" {
		t.Error("custom header should be preserved")
	}
	if rec.Body.String() != "response body" {
		t.Errorf("response body should be preserved, got: %s", rec.Body.String())
	}
}

func TestRequestLoggingMiddleware_SkipsNoisyEndpoints(t *testing.T) {
	for _, path := range []string{"/health", "/metrics", "/static/site.css"} {
		var buf bytes.Buffer
		wrapped := newLoggedHandler(&buf, http.StatusOK)

		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		if buf.Len() > 0 {
			t.Errorf("%s should not be logged, got: %s", path, buf.String())
		}
	}
}
