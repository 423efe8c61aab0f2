// Package http exposes the ledger, analytics and importer to presentation
// clients as a small JSON API.
package http

import (
	"net/http"
	"time"

	"bottega/internal/analytics"
	"bottega/internal/cache"
	"bottega/internal/ledger"
)

// Server holds the API's collaborators: the ledger it commands and the
// response caches for the analytics endpoints.
type Server struct {
	ledger      *ledger.Ledger
	defaultTopN int
	summaries   *cache.LRUCache[analytics.Summary]
	rankings    *cache.LRUCache[[]analytics.ItemTotal]
}

// Options tunes the server; zero values fall back to sensible defaults.
type Options struct {
	DefaultTopN int
	CacheSize   int
	CacheTTL    time.Duration
}

// NewServer wires the API around a ledger. The server subscribes itself to
// the ledger so analytics caches are dropped whenever a mutation lands.
func NewServer(led *ledger.Ledger, opts Options) *Server {
	if opts.DefaultTopN <= 0 {
		opts.DefaultTopN = analytics.DefaultTopN
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}

	s := &Server{
		ledger:      led,
		defaultTopN: opts.DefaultTopN,
		summaries:   cache.NewLRUCache[analytics.Summary](opts.CacheSize, opts.CacheTTL),
		rankings:    cache.NewLRUCache[[]analytics.ItemTotal](opts.CacheSize, opts.CacheTTL),
	}
	led.Subscribe(s)
	return s
}

// LedgerChanged implements ledger.Notifier: any applied mutation invalidates
// the cached analytics responses.
func (s *Server) LedgerChanged(event ledger.ChangeEvent) {
	if !event.Succeeded() {
		return
	}
	s.summaries.Clear()
	s.rankings.Clear()
}

// Handler returns the routed handler with tracing applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("POST /api/items", s.handleAddItem)
	mux.HandleFunc("GET /api/sales", s.handleListSales)
	mux.HandleFunc("POST /api/sales", s.handleRecordSale)
	mux.HandleFunc("GET /api/analytics/summary", s.handleSummary)
	mux.HandleFunc("GET /api/analytics/top", s.handleTopSellers)
	mux.HandleFunc("POST /api/import", s.handleImport)

	return traceMiddleware(mux)
}

// Caches exposes the response caches for cleanup registration.
func (s *Server) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.summaries, s.rankings}
}
