package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agrisurvey/portal/internal/config"
	"github.com/agrisurvey/portal/internal/core"
	_ "github.com/agrisurvey/portal/internal/core/tables" // Register all tables
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Import.MaxFileSize = 1 << 20
	cfg.Rate.Enabled = false

	// nil pool: the endpoints under test never reach the database
	service := core.NewService(nil, nil, 1)
	return NewServer(cfg, service)
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("missing security header, got %q", got)
	}
}

func TestListTablesEndpoint(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Tables []tableView `json:"tables"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tables) == 0 {
		t.Fatal("no tables returned")
	}

	// The farmer root table must come first
	if body.Tables[0].Key != "farmers" {
		t.Errorf("first table = %s, want farmers", body.Tables[0].Key)
	}
	for _, tbl := range body.Tables[1:] {
		if tbl.ParentRef != "farmer_id" {
			t.Errorf("table %s parentRef = %q, want farmer_id", tbl.Key, tbl.ParentRef)
		}
	}
}

func TestDownloadTemplate(t *testing.T) {
	s := testServer(t)

	t.Run("csv", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/template/farmers", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("Content-Type = %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "farmer_id") {
			t.Error("template missing farmer_id column")
		}
	})

	t.Run("xlsx", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/template/assets?format=xlsx", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/template/no_such", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestCreateFarmerValidation(t *testing.T) {
	s := testServer(t)

	t.Run("missing name", func(t *testing.T) {
		body := strings.NewReader(`{"village":"Wardha"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/farmers", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "required") {
			t.Errorf("body = %s, want a required-field message", rec.Body.String())
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/farmers", strings.NewReader(`{listen`))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCreateChildRecord(t *testing.T) {
	s := testServer(t)
	farmerID := "11111111-1111-4111-8111-111111111111"

	t.Run("unknown table", func(t *testing.T) {
		body := strings.NewReader(`{"crop_name":"Cotton"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/farmers/"+farmerID+"/no_such_table", body)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("root table rejected", func(t *testing.T) {
		body := strings.NewReader(`{"name":"A"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/farmers/"+farmerID+"/farmers", body)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/farmers/"+farmerID+"/crop_history", strings.NewReader(`nope`))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestImportRequiresFile(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import/farmers", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImportSessionNotFound(t *testing.T) {
	s := testServer(t)

	for _, path := range []string{
		"/api/import/bogus/result",
		"/api/import/bogus/progress",
		"/api/import/bogus/errors",
	} {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/import/bogus/cancel", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("cancel status = %d, want 404", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("4th request should be rejected")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other IPs are not affected")
	}
}

func TestRateLimitedResponse(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Import.MaxFileSize = 1 << 20
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 1

	s := NewServer(cfg, core.NewService(nil, nil, 1))

	first := httptest.NewRecorder()
	s.Router().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	s.Router().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Error("missing Retry-After header")
	}
}
