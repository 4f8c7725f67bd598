// Package api exposes the analytics over a JSON HTTP interface. Responses
// share one envelope: {data, meta} on success, {error} on failure.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Rbh2733/Dashboard/internal/market"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/scanner"
)

// Server wires the analytics packages to their HTTP endpoints.
type Server struct {
	Fetcher  market.Fetcher
	Scanner  *scanner.Scanner
	Analyzer *portfolio.Analyzer
	Book     *portfolio.Book
	Log      zerolog.Logger
	Access   zerolog.Logger

	// Universe is the default ticker list for scans that name neither
	// tickers nor a universe.
	Universe []string

	started time.Time
}

// NewServer creates a Server. The access logger defaults to the main
// logger and can be swapped before Handler is called.
func NewServer(fetcher market.Fetcher, sc *scanner.Scanner, analyzer *portfolio.Analyzer, book *portfolio.Book, log zerolog.Logger) *Server {
	return &Server{
		Fetcher:  fetcher,
		Scanner:  sc,
		Analyzer: analyzer,
		Book:     book,
		Log:      log,
		Access:   log,
		started:  time.Now(),
	}
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.respondError(w, req, http.StatusNotFound, codeNotFound, "no such endpoint")
	})

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/health", s.handleHealth).Methods("GET")
	v1.HandleFunc("/history/{ticker}", s.handleHistory).Methods("GET")
	v1.HandleFunc("/patterns/{ticker}", s.handlePatterns).Methods("GET")
	v1.HandleFunc("/scan", s.handleScan).Methods("POST")
	v1.HandleFunc("/greeks", s.handleGreeks).Methods("POST")
	v1.HandleFunc("/options/chain", s.handleChain).Methods("POST")
	v1.HandleFunc("/fundamental/dcf", s.handleDCF).Methods("POST")
	v1.HandleFunc("/portfolio/summary", s.handlePortfolioSummary).Methods("POST")
	v1.HandleFunc("/backtest", s.handleBacktest).Methods("POST")
	return r
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.routes()
	h = s.recovery(h)
	h = s.accessLog(h)
	h = requestID(h)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", RequestIDHeader}),
	)
	return cors(h)
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info().Str("addr", addr).Str("source", s.Fetcher.Name()).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Log.Info().Msg("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
