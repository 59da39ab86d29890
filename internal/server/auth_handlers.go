package server

import (
	"encoding/json"
	"net/http"
)

// handleAuthURL returns the Google OAuth consent URL the user must visit to
// authorize calendar access.
// GET /api/auth/google/url
func (s *Server) handleAuthURL(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "google calendar is not configured")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"auth_url": s.gcalClient.GetAuthURL()})
}

// handleAuthCallback exchanges the authorization code for a token. The token
// is persisted by the calendar client, so sync works across restarts.
// POST /api/auth/google/callback
// Body: { "code": "..." }
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "google calendar is not configured")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), req.Code); err != nil {
		respondError(w, http.StatusBadRequest, "authentication failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
}
