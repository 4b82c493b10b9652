package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecureHeadersOnBlogResponses(t *testing.T) {
	responses := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"listing", http.MethodGet, "/", http.StatusOK},
		{"share form", http.MethodGet, "/1/share", http.StatusOK},
		{"comment rejected", http.MethodPost, "/2024/1/5/hello-world", http.StatusForbidden},
		{"not found", http.MethodGet, "/2024/13/1/hello-world", http.StatusNotFound},
	}

	for _, resp := range responses {
		t.Run(resp.name, func(t *testing.T) {
			handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(resp.status)
			}))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(resp.method, resp.path, nil))

			if rr.Code != resp.status {
				t.Errorf("status: got %d, want %d", rr.Code, resp.status)
			}
			for header, want := range map[string]string{
				"Content-Security-Policy": contentSecurityPolicy,
				"X-Frame-Options":         "DENY",
				"X-Content-Type-Options":  "nosniff",
				"Referrer-Policy":         "strict-origin-when-cross-origin",
			} {
				if got := rr.Header().Get(header); got != want {
					t.Errorf("%s: got %q, want %q", header, got, want)
				}
			}
		})
	}
}

func TestContentSecurityPolicyDirectives(t *testing.T) {
	directives := make(map[string]string)
	for _, d := range strings.Split(contentSecurityPolicy, ";") {
		name, value, _ := strings.Cut(strings.TrimSpace(d), " ")
		directives[name] = value
	}

	tests := []struct {
		directive string
		want      string
	}{
		// Comment and share forms post back to the site only.
		{"form-action", "'self'"},
		{"frame-ancestors", "'none'"},
		// Highlighted code blocks carry inline styles.
		{"style-src", "'self' 'unsafe-inline'"},
		{"default-src", "'self'"},
	}
	for _, tt := range tests {
		t.Run(tt.directive, func(t *testing.T) {
			if got := directives[tt.directive]; got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.directive, got, tt.want)
			}
		})
	}
	if strings.Contains(directives["script-src"]+directives["default-src"], "unsafe-inline") {
		t.Error("scripts must not allow inline code")
	}
}

func TestSecureHeadersSetBeforeHandlerWrites(t *testing.T) {
	var sawCSP string
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawCSP = w.Header().Get("Content-Security-Policy")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if sawCSP != contentSecurityPolicy {
		t.Errorf("handler should see CSP already set, got %q", sawCSP)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("handler override: got %q, want SAMEORIGIN", got)
	}
}
