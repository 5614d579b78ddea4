package middleware

import (
	"crypto/subtle"
	"net/http"
)

// MetricsAuthMiddleware guards the Prometheus endpoint with HTTP basic
// auth. The site is otherwise account-free, so this is the only credential
// check in the stack. Leaving both credentials unset disables the check,
// which is how local development runs.
type MetricsAuthMiddleware struct {
	username []byte
	password []byte
	enabled  bool
}

// NewMetricsAuthMiddleware creates a new metrics auth middleware.
func NewMetricsAuthMiddleware(username, password string) *MetricsAuthMiddleware {
	return &MetricsAuthMiddleware{
		username: []byte(username),
		password: []byte(password),
		enabled:  username != "" || password != "",
	}
}

// Handler returns middleware that requires basic authentication.
func (m *MetricsAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !m.authorized(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authorized compares both credentials in constant time. Both comparisons
// always run so a wrong username costs the same as a wrong password.
func (m *MetricsAuthMiddleware) authorized(user, pass string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(user), m.username) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(pass), m.password) == 1
	return userMatch && passMatch
}
