package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func securityHeaders(t *testing.T, isSecure bool, method string) http.Header {
	t.Helper()

	mw := NewSecurityHeadersMiddleware(isSecure)
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	return rec.Header()
}

func TestSecurityHeadersMiddleware_SetsAllHeaders(t *testing.T) {
	headers := securityHeaders(t, false, "GET")

	testCases := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
	}

	for _, tc := range testCases {
		if got := headers.Get(tc.header); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.header, tc.want, got)
		}
	}

	pp := headers.Get("Permissions-Policy")
	for _, directive := range []string{"geolocation=()", "camera=()", "microphone=()"} {
		if !strings.Contains(pp, directive) {
			t.Errorf("Permissions-Policy should contain %s, got: %s", directive, pp)
		}
	}
}

func TestSecurityHeadersMiddleware_HSTSOnlyInProduction(t *testing.T) {
	hsts := securityHeaders(t, true, "GET").Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("production HSTS header incomplete: %q", hsts)
	}

	if got := securityHeaders(t, false, "GET").Get("Strict-Transport-Security"); got != "" {
		t.Errorf("development should not set HSTS, got: %q", got)
	}
}

func TestSecurityHeadersMiddleware_CSP(t *testing.T) {
	csp := securityHeaders(t, false, "GET").Get("Content-Security-Policy")

	// The wizard depends on htmx from unpkg and inline styles; images may
	// come from any HTTPS source.
	for _, directive := range []string{
		"default-src 'self'",
		"script-src 'self' https://unpkg.com 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"form-action 'self'",
	} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP should contain %q, got: %s", directive, csp)
		}
	}
}

func TestSecurityHeadersMiddleware_AppliesToPOST(t *testing.T) {
	if got := securityHeaders(t, false, "POST").Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("POST requests should carry X-Frame-Options DENY, got %q", got)
	}
}

func TestSecurityHeadersMiddleware_PassesThroughRequests(t *testing.T) {
	mw := NewSecurityHeadersMiddleware(false)

	called := false
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/contato", nil))

	if !called {
		t.Error("handler should have been called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status should pass through, got %d", rec.Code)
	}
}
