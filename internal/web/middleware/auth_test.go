package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrisurvey/portal/internal/config"
)

func authHandler(cfg *config.SecurityConfig) http.Handler {
	return APIKeyAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAPIKeyAuthDisabled(t *testing.T) {
	h := authHandler(&config.SecurityConfig{RequireAPIKey: false})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when auth is disabled", rec.Code)
	}
}

func TestAPIKeyAuthEnabled(t *testing.T) {
	cfg := &config.SecurityConfig{
		RequireAPIKey: true,
		APIKeys:       []string{"secret-one", "secret-two"},
	}
	h := authHandler(cfg)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"first key", "secret-one", http.StatusOK},
		{"second key", "secret-two", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	var sawAddr string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAddr = r.RemoteAddr
	})

	t.Run("trusted proxy honored", func(t *testing.T) {
		h := TrustedRealIP([]string{"10.0.0.0/8"})(inner)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.2.3:4567"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.1.2.3")

		h.ServeHTTP(httptest.NewRecorder(), req)
		if sawAddr != "203.0.113.9" {
			t.Errorf("RemoteAddr = %q, want forwarded client IP", sawAddr)
		}
	})

	t.Run("untrusted client cannot spoof", func(t *testing.T) {
		h := TrustedRealIP([]string{"10.0.0.0/8"})(inner)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:9999"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")

		h.ServeHTTP(httptest.NewRecorder(), req)
		if sawAddr != "198.51.100.7:9999" {
			t.Errorf("RemoteAddr = %q, spoofed header must be ignored", sawAddr)
		}
	})

	t.Run("bare IP in trusted list", func(t *testing.T) {
		h := TrustedRealIP([]string{"127.0.0.1"})(inner)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:5000"
		req.Header.Set("X-Real-IP", "203.0.113.5")

		h.ServeHTTP(httptest.NewRecorder(), req)
		if sawAddr != "203.0.113.5" {
			t.Errorf("RemoteAddr = %q, want header IP from trusted proxy", sawAddr)
		}
	})
}
