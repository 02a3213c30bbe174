package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/adasviz/zodmap/internal/catalog"
)

const shutdownTimeout = 5 * time.Second

// Handler serves the zodmap data service HTTP API over a catalog service.
type Handler struct {
	svc *catalog.Service
}

// New builds a Handler.
func New(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes returns the service mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/logs", h.handleList)
	mux.HandleFunc("GET /api/logs/{id}", h.handleDetail)
	mux.HandleFunc("GET /api/logs/{id}/image", h.handleImage)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			h.writeError(w, "offset must be a non-negative integer", http.StatusBadRequest)
			return
		}
		offset = v
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			h.writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	include := false
	switch q.Get("include_details") {
	case "true", "1":
		include = true
	}

	page, err := h.svc.ListPage(r.Context(), offset, limit, include)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, page)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	logID := r.PathValue("id")

	detail, err := h.svc.GetDetail(r.Context(), logID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, "Unknown log id: "+logID, http.StatusNotFound)
			return
		}
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, detail)
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	logID := r.PathValue("id")

	img, err := h.svc.GetPreview(r.Context(), logID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, "Preview image not available", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to load preview image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	if _, err := w.Write(img.Data); err != nil {
		slog.Error("Unable to write preview response", "log_id", logID, "err", err)
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}

// Run serves the API on addr until ctx is cancelled, then drains connections
// for up to five seconds.
func Run(ctx context.Context, addr string, svc *catalog.Service) error {
	server := &http.Server{
		Addr:    addr,
		Handler: New(svc).Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("zodmap data service listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
