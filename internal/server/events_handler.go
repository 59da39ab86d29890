package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.db.ListEvents()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []*model.CalendarEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}

func (s *Server) handleListEventsForDay(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		respondError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	events, err := s.db.ListEventsForDay(day, s.loc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []*model.CalendarEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.db.GetEventByID(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var event model.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if event.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if event.StartDate.IsZero() || event.EndDate.IsZero() {
		respondError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}
	if !event.EndDate.After(event.StartDate) {
		respondError(w, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	if event.ID == "" {
		event.ID = model.NewID()
	}

	if err := s.db.CreateEvent(&event); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// updateEventRequest distinguishes omitted fields from explicit values so a
// partial update never clears what the caller did not send.
type updateEventRequest struct {
	Title     *string    `json:"title"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Location  *string    `json:"location"`
	Notes     *string    `json:"notes"`
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Identity is immutable; the path names the event and the body cannot
	// change it.
	event, err := s.db.GetEventByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		event.Title = *req.Title
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if !event.EndDate.After(event.StartDate) {
		respondError(w, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	if err := s.db.UpdateEvent(event); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := s.db.GetEventByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	event, err := s.db.GetEventByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := s.db.DeleteEvent(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Best effort: remove the synced copy too.
	if event.ExternalEventID != "" && s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		_ = s.gcalClient.DeleteEvent("", event.ExternalEventID)
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSyncEvent pushes a stored event to Google Calendar and records the
// returned external ID on the event.
func (s *Server) handleSyncEvent(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondError(w, http.StatusConflict, "google calendar is not configured")
		return
	}

	event, err := s.db.GetEventByID(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if event.ExternalEventID != "" {
		if err := s.gcalClient.UpdateEvent("", event.ExternalEventID, event); err != nil {
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, event)
		return
	}

	externalID, err := s.gcalClient.CreateEvent("", event)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := s.db.SetExternalEventID(event.ID, externalID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	event.ExternalEventID = externalID
	respondJSON(w, http.StatusOK, event)
}
