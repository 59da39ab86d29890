package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]any{
		"status": "healthy",
		"gcal":   "disconnected",
	}
	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}

	respondJSON(w, http.StatusOK, status)
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	EventInfo model.ExtractedEventInfo `json:"event_info"`
	Source    model.Source             `json:"source"`
}

// handleExtract runs raw screenshot text through the extraction pipeline.
// The pipeline never fails; a degraded result is flagged by its source tag.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	info, source := s.extractor.Extract(r.Context(), req.Text)
	respondJSON(w, http.StatusOK, extractResponse{EventInfo: info, Source: source})
}

type routeRequest struct {
	Events           []model.CalendarEvent     `json:"events"`
	StartingLocation *model.LocationCoordinate `json:"starting_location,omitempty"`
}

type routeResponse struct {
	Plan   model.RoutePlan `json:"plan"`
	Source model.Source    `json:"source"`
}

// handleRoute plans a multi-leg route for the submitted events.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, source := s.planner.Plan(r.Context(), req.Events, req.StartingLocation)
	respondJSON(w, http.StatusOK, routeResponse{Plan: plan, Source: source})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
