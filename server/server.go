// Package server exposes the detection engine over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trendpulse/viral-engine/actions"
	"github.com/trendpulse/viral-engine/model"
)

// Server is the HTTP front end over the action layer.
type Server struct {
	actions *actions.Actions
	http    *http.Server
}

// New creates a server listening on addr.
func New(addr string, a *actions.Actions) *Server {
	s := &Server{actions: a}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/rising", s.handleRising)
		r.Get("/viral-shorts", s.handleViralShorts)
		r.Get("/trending", s.handleTrending)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRising(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	result, err := s.actions.GetRisingVideos(r.Context(), keyword)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleViralShorts(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))

	var tierFilter []model.ViralTier
	if raw := r.URL.Query().Get("tiers"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			switch tier := model.ViralTier(strings.TrimSpace(t)); tier {
			case model.TierMega, model.TierHigh, model.TierRising:
				tierFilter = append(tierFilter, tier)
			default:
				writeError(w, http.StatusBadRequest, "unknown tier: "+t)
				return
			}
		}
	}

	result, err := s.actions.GetViralShorts(r.Context(), keyword, tierFilter)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")

	var maxResults int64 = 10
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "max must be an integer between 1 and 50")
			return
		}
		maxResults = parsed
	}

	videos, err := s.actions.GetTrendingVideos(r.Context(), categoryID, maxResults)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"videos": videos})
}

// writeAPIError maps engine errors onto HTTP statuses, distinguishing quota
// exhaustion so clients can message it differently.
func writeAPIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrQuotaExceeded):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "daily API quota exceeded, try again later",
			"code":  "quota_exceeded",
		})
	case errors.Is(err, model.ErrServiceUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "upstream service unavailable",
			"code":  "service_unavailable",
		})
	default:
		log.Error().Err(err).Msg("Unhandled error in request")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal error",
			"code":  "internal",
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
