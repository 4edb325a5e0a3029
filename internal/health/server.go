// Package health serves the liveness and statistics endpoints used by
// container orchestration.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ScanCounter counts recorded scans.
type ScanCounter interface {
	Count(ctx context.Context) (int, error)
}

// ChatCounter counts chats with a cached card.
type ChatCounter interface {
	Len() int
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
	Error         string    `json:"error,omitempty"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Scans       int `json:"scans"`
	CachedChats int `json:"cachedChats"`
}

// Handler serves the health endpoints.
type Handler struct {
	logger  *zap.Logger
	version string
	started time.Time
	db      Pinger
	scans   ScanCounter
	chats   ChatCounter
	now     func() time.Time
}

// NewHandler creates a Handler. started is reported as the process start time.
func NewHandler(logger *zap.Logger, version string, started time.Time, db Pinger, scans ScanCounter, chats ChatCounter) *Handler {
	return &Handler{
		logger:  logger.Named("health"),
		version: version,
		started: started,
		db:      db,
		scans:   scans,
		chats:   chats,
		now:     time.Now,
	}
}

// Router returns the chi router with request logging and panic recovery.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/healthz", h.Health)
	r.Get("/stats", h.Stats)

	return r
}

// Health reports 503 when the history database is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := HealthResponse{
		Status:        "healthy",
		Timestamp:     now.UTC(),
		Version:       h.version,
		UptimeSeconds: int64(now.Sub(h.started).Seconds()),
	}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, resp)
}

// Stats reports scan and context cache counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	n, err := h.scans.Count(r.Context())
	if err != nil {
		h.logger.Error("Failed to count scans", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to count scans"})

		return
	}

	h.writeJSON(w, http.StatusOK, StatsResponse{Scans: n, CachedChats: h.chats.Len()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
