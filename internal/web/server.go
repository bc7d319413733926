// Package web provides the HTTP API for the survey portal: table discovery,
// template downloads, import preview and execution, farmer CRUD, resets, and
// the audit trail.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/agrisurvey/portal/internal/config"
	"github.com/agrisurvey/portal/internal/core"
	custommw "github.com/agrisurvey/portal/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Server wires the HTTP router to the import service.
type Server struct {
	cfg      *config.Config
	service  *core.Service
	validate *validator.Validate
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a fully-routed server around the given service.
func NewServer(cfg *config.Config, service *core.Service) *Server {
	s := &Server{
		cfg:      cfg,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(custommw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(custommw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		rl := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(rl.middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(custommw.APIKeyAuth(&s.cfg.Security))

		// SSE progress streams must outlive the request timeout, so the
		// timeout middleware applies to everything else
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

			r.Get("/tables", s.handleListTables)
			r.Get("/template/{tableKey}", s.handleDownloadTemplate)

			r.Post("/preview/{tableKey}", s.handlePreview)
			r.Post("/import/{tableKey}", s.handleImport)
			r.Get("/import/{importID}/result", s.handleImportResult)
			r.Post("/import/{importID}/cancel", s.handleCancelImport)
			r.Get("/import/{importID}/errors", s.handleErrorReport)

			r.Get("/farmers", s.handleListFarmers)
			r.Post("/farmers", s.handleCreateFarmer)
			r.Get("/farmers/{farmerID}", s.handleGetFarmer)
			r.Delete("/farmers/{farmerID}", s.handleDeleteFarmer)
			r.Post("/farmers/{farmerID}/{tableKey}", s.handleCreateChildRecord)

			r.Post("/reset/{tableKey}", s.handleReset)
			r.Post("/reset", s.handleResetAll)

			r.Get("/history", s.handleImportHistory)
			r.Get("/audit", s.handleAuditTrail)
			r.Get("/status", s.handleStatus)
		})

		r.Get("/import/{importID}/progress", s.handleImportProgress)
	})
}

// Start begins listening for HTTP requests and blocks until the listener
// closes.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: s.cfg.Server.ReadTimeout,
		// WriteTimeout stays 0 so SSE progress streams are not cut off
		IdleTimeout: 60 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds standard security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter is a token-bucket limiter keyed by client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow reports whether the request should proceed, consuming a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: time.Now()}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
