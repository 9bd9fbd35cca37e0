package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"quickledger/internal/cache"
	"quickledger/internal/core"
	"quickledger/internal/ledger"
	appweb "quickledger/web"
)

// snapshotKey is the single cache key: one snapshot covers every summary.
const snapshotKey = "snapshot"

// Server renders the entry form and the monthly summary over a snapshot of
// the transaction store. The snapshot cache lives here, never in the
// engine: it is invalidated on every successful append and expires on TTL.
type Server struct {
	http.Server
	templates   *template.Template
	store       ledger.Store
	rateLimiter *rateLimiter
	recentLimit int

	snapshotCache *cache.LRUCache[[]core.Transaction]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, store ledger.Store, snapshotTTL time.Duration, recentLimit int) *Server {
	mux := http.NewServeMux()

	if snapshotTTL <= 0 {
		snapshotTTL = 5 * time.Minute
	}
	if recentLimit <= 0 {
		recentLimit = core.DefaultRecentLimit
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		rateLimiter:      newRateLimiter(),
		recentLimit:      recentLimit,
		snapshotCache:    cache.NewLRUCache[[]core.Transaction](1, snapshotTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	// UI partials
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummary))

	return s
}

// startCacheCleanup periodically drops expired snapshots.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.snapshotCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// snapshot returns the normalized transaction snapshot, reading the store
// on a cache miss. Row issues are logged, never fatal: a corrupted sheet
// still renders.
func (s *Server) snapshot(ctx context.Context) ([]core.Transaction, error) {
	if records, found := s.snapshotCache.Get(snapshotKey); found {
		slog.DebugContext(ctx, "Snapshot cache hit", "records", len(records))
		return records, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	rows, err := s.store.ReadAll(cctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	records := make([]core.Transaction, 0, len(rows))
	for i, cols := range rows {
		txn, issues := core.NormalizeRow(cols)
		if len(issues) > 0 {
			slog.DebugContext(ctx, "Row fields coerced", "row", i, "fields", issues)
		}
		records = append(records, txn)
	}

	s.snapshotCache.Set(snapshotKey, records)
	slog.DebugContext(ctx, "Snapshot cached", "records", len(records))
	return records, nil
}

// invalidateSnapshot drops the cached snapshot after a successful append.
func (s *Server) invalidateSnapshot() {
	s.snapshotCache.Delete(snapshotKey)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
