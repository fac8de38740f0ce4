// Package http exposes health, metrics, and the venue filter API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/venuequery"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// VenueQuerier answers venue filter and detail queries.
type VenueQuerier interface {
	FilteredVenues(ctx context.Context, f venuequery.Filter) ([]domain.StoredVenue, error)
	VenueWithEvents(ctx context.Context, id uuid.UUID) (venuequery.VenueDetail, error)
}

// Server exposes health, readiness, metrics, and venue query HTTP endpoints.
type Server struct {
	httpServer *http.Server
	querier    VenueQuerier
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /api/venues routes.
func NewServer(addr string, ready ReadinessChecker, querier VenueQuerier, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		querier: querier,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/venues", s.handleVenues)
	mux.HandleFunc("GET /api/venues/{id}", s.handleVenueByID)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// venueResponse is the wire shape of one venue.
type venueResponse struct {
	ID         string  `json:"id"`
	VenueID    string  `json:"venue_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Area       string  `json:"area"`
	EventCount int     `json:"event_count"`
}

type eventResponse struct {
	ID          string   `json:"id"`
	EventID     string   `json:"event_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Presenter   string   `json:"presenter"`
	Dates       []string `json:"dates"`
}

type venueDetailResponse struct {
	venueResponse
	Events []eventResponse `json:"events"`
}

// handleVenues serves GET /api/venues?area=&keyword=&distance=.
func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := venuequery.Filter{
		Area:    q.Get("area"),
		Keyword: q.Get("keyword"),
	}

	if raw := q.Get("distance"); raw != "" {
		distance, err := strconv.ParseFloat(raw, 64)
		if err != nil || distance < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"message": "distance must be a non-negative number",
			})
			return
		}
		filter.DistanceKm = distance
	}

	venues, err := s.querier.FilteredVenues(r.Context(), filter)
	if err != nil {
		s.logger.Error("filter venues failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "failed to load locations",
		})
		return
	}

	resp := make([]venueResponse, len(venues))
	for i, v := range venues {
		resp[i] = toVenueResponse(v)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVenueByID serves GET /api/venues/{id} with the venue's events.
func (s *Server) handleVenueByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "invalid venue id",
		})
		return
	}

	detail, err := s.querier.VenueWithEvents(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrVenueNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"message": "location not found",
			})
			return
		}
		s.logger.Error("load venue failed", "venue", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "failed to load location",
		})
		return
	}

	resp := venueDetailResponse{
		venueResponse: toVenueResponse(detail.StoredVenue),
		Events:        make([]eventResponse, len(detail.Events)),
	}
	for i, e := range detail.Events {
		dates := make([]string, len(e.Dates))
		for j, d := range e.Dates {
			dates[j] = d.Format(time.DateOnly)
		}
		resp.Events[i] = eventResponse{
			ID:          e.ID.String(),
			EventID:     e.EventID,
			Title:       e.Title,
			Description: e.Description,
			Presenter:   e.Presenter,
			Dates:       dates,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func toVenueResponse(v domain.StoredVenue) venueResponse {
	return venueResponse{
		ID:         v.ID.String(),
		VenueID:    v.VenueID,
		Name:       v.Name,
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
		Area:       v.Area,
		EventCount: v.EventCount,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
