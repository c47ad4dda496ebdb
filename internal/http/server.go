// Package http serves the ledger JSON API.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/ledger"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
)

// Server wraps http.Server with the ledger API handlers and the
// trace, rate limit, and security header middleware.
type Server struct {
	http.Server
	store       *ledger.Store
	chartMonths int
	limiter     *ratelimit.Limiter
	tracer      *trace.Middleware
}

// NewServer builds the API server listening on addr. chartMonths sets the
// default monthly chart window when the request does not specify one.
func NewServer(addr string, store *ledger.Store, chartMonths int) *Server {
	s := &Server{
		store:       store,
		chartMonths: chartMonths,
		limiter:     ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:      trace.NewMiddleware(clientIP),
	}

	mux := http.NewServeMux()
	s.routes(mux)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(clientIP)(handler)
	handler = security.Headers(security.DefaultHeadersConfig())(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleAddTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleRemoveTransaction)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/breakdown/category", s.handleCategoryBreakdown)
	mux.HandleFunc("GET /api/breakdown/month", s.handleMonthBreakdown)

	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/export.json", s.handleExportJSON)
	mux.HandleFunc("POST /api/import", s.handleImport)

	mux.HandleFunc("GET /healthz", handleHealth)
}

// Shutdown stops the rate limiter's background cleanup and drains the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	err := s.Server.Shutdown(ctx)
	slog.Info("HTTP server stopped", "requests_served", s.tracer.TotalRequests())
	return err
}

// clientIP extracts the originating client address, honoring the first
// X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
