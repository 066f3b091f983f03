// Package web serves the read-only visualization and analytics API over the
// store's public queries, plus the embedded dashboard. Nothing here mutates
// the store.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/compress"
	"github.com/raphaelgruber/ctxkeep-go/internal/graph"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/raphaelgruber/ctxkeep-go/web"
)

// Handler bundles the store and its collaborators behind the HTTP API.
type Handler struct {
	store   *store.Store
	metrics *metrics.Collector
	project string
	logger  *slog.Logger
}

// NewHandler creates the API handler. Metrics may be nil.
func NewHandler(st *store.Store, mc *metrics.Collector, project string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: st, metrics: mc, project: project, logger: logger}
}

// Routes builds the full mux: JSON API, websocket stats feed, embedded SPA.
func (h *Handler) Routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("GET /api/stats", h.handleStats)
	mux.HandleFunc("GET /api/entries", h.handleEntries)
	mux.HandleFunc("GET /api/graph", h.handleGraph)
	mux.HandleFunc("GET /api/recall", h.handleRecall)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("GET /ws", h.handleWS)

	// Serve the embedded SPA from web/dist
	distFS, err := fs.Sub(web.Dist, "dist")
	if err != nil {
		return nil, fmt.Errorf("embedded dashboard: %w", err)
	}
	fileServer := http.FileServer(http.FS(distFS))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Try serving the file directly; fall back to index.html for SPA routing
		if r.URL.Path != "/" {
			f, err := distFS.Open(strings.TrimPrefix(r.URL.Path, "/"))
			if errors.Is(err, fs.ErrNotExist) {
				r.URL.Path = "/"
			} else if err != nil {
				h.logger.Warn("unexpected error opening embedded file", "path", r.URL.Path, "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			} else {
				f.Close()
			}
		}
		fileServer.ServeHTTP(w, r)
	})

	return mux, nil
}

// statsPayload is the shape pushed to /api/stats and the websocket feed.
type statsPayload struct {
	Project string `json:"project"`
	Stats   any    `json:"stats"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, statsPayload{Project: h.project, Stats: h.store.Stats()})
}

func (h *Handler) handleEntries(w http.ResponseWriter, r *http.Request) {
	agent := r.URL.Query().Get("agent")
	var topics []string
	if topic := r.URL.Query().Get("topic"); topic != "" {
		topics = strings.Split(topic, ",")
	}

	entries := h.store.ListEntries(agent, topics)
	h.writeJSON(w, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *Handler) handleGraph(w http.ResponseWriter, r *http.Request) {
	g := graph.Project(h.store.Snapshot(), h.store.Summaries())
	h.writeJSON(w, g)
}

func (h *Handler) handleRecall(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxTokens := 2000
	if s := q.Get("max_tokens"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			http.Error(w, "max_tokens must be a non-negative integer", http.StatusBadRequest)
			return
		}
		maxTokens = v
	}

	minQuality := 0.0
	if s := q.Get("min_quality"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 1 {
			http.Error(w, "min_quality must be between 0 and 1", http.StatusBadRequest)
			return
		}
		minQuality = v
	}

	var topics []string
	if s := q.Get("topics"); s != "" {
		topics = strings.Split(s, ",")
	}

	result := compress.Focus(h.store.Snapshot(), compress.FocusOptions{
		Topics:     topics,
		Agent:      q.Get("agent"),
		MaxTokens:  maxTokens,
		MinQuality: minQuality,
	})
	h.writeJSON(w, result)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.metrics == nil {
		http.Error(w, "metrics collection disabled", http.StatusNotFound)
		return
	}
	h.writeJSON(w, h.metrics.Snapshot())
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", "error", err)
	}
}
