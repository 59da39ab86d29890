package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

// CreateEvent stores a new calendar event. The event must carry a non-empty
// ID; identity is assigned by the caller and never regenerated here.
func (d *DB) CreateEvent(event *model.CalendarEvent) error {
	if event.ID == "" {
		return fmt.Errorf("event id is required")
	}

	var rawText, source sql.NullString
	var confidence sql.NullFloat64
	if event.ExtractedInfo != nil {
		rawText = sql.NullString{String: event.ExtractedInfo.RawText, Valid: true}
		confidence = sql.NullFloat64{Float64: event.ExtractedInfo.Confidence, Valid: true}
		source = nullString(string(event.ExtractedInfo.Source))
	}

	_, err := d.Exec(`
		INSERT INTO calendar_events (
			id, title, start_time, end_time, location, notes,
			raw_text, confidence, source, external_event_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID, event.Title, event.StartDate.UTC(), event.EndDate.UTC(),
		nullString(event.Location), nullString(event.Notes),
		rawText, confidence, source, nullString(event.ExternalEventID),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEventByID returns a single event or sql.ErrNoRows.
func (d *DB) GetEventByID(id string) (*model.CalendarEvent, error) {
	row := d.QueryRow(`
		SELECT id, title, start_time, end_time, location, notes,
		       raw_text, confidence, source, external_event_id
		FROM calendar_events WHERE id = ?
	`, id)
	return scanEvent(row)
}

// ListEvents returns all events ordered by start time.
func (d *DB) ListEvents() ([]*model.CalendarEvent, error) {
	rows, err := d.Query(`
		SELECT id, title, start_time, end_time, location, notes,
		       raw_text, confidence, source, external_event_id
		FROM calendar_events ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListEventsForDay returns events whose start time falls on the given day in
// the provided timezone, ordered by start time.
func (d *DB) ListEventsForDay(day time.Time, loc *time.Location) ([]*model.CalendarEvent, error) {
	local := day.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	rows, err := d.Query(`
		SELECT id, title, start_time, end_time, location, notes,
		       raw_text, confidence, source, external_event_id
		FROM calendar_events
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time
	`, startOfDay.UTC(), endOfDay.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list events for day: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// UpdateEvent replaces the mutable fields of an existing event, keyed on ID.
func (d *DB) UpdateEvent(event *model.CalendarEvent) error {
	result, err := d.Exec(`
		UPDATE calendar_events
		SET title = ?, start_time = ?, end_time = ?, location = ?, notes = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		event.Title, event.StartDate.UTC(), event.EndDate.UTC(),
		nullString(event.Location), nullString(event.Notes), event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(result)
}

// SetExternalEventID records the external calendar identifier after a sync.
func (d *DB) SetExternalEventID(id, externalID string) error {
	result, err := d.Exec(`
		UPDATE calendar_events
		SET external_event_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, externalID, id)
	if err != nil {
		return fmt.Errorf("failed to set external event id: %w", err)
	}
	return requireRow(result)
}

// DeleteEvent removes an event by ID.
func (d *DB) DeleteEvent(id string) error {
	result, err := d.Exec(`DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	var location, notes, rawText, source, externalID sql.NullString
	var confidence sql.NullFloat64

	err := row.Scan(
		&event.ID, &event.Title, &event.StartDate, &event.EndDate,
		&location, &notes, &rawText, &confidence, &source, &externalID,
	)
	if err != nil {
		return nil, err
	}

	event.Location = location.String
	event.Notes = notes.String
	event.ExternalEventID = externalID.String
	if rawText.Valid {
		event.ExtractedInfo = &model.ExtractedEventInfo{
			RawText:    rawText.String,
			Confidence: confidence.Float64,
			Source:     model.Source(source.String),
		}
	}
	return &event, nil
}

func scanEvents(rows *sql.Rows) ([]*model.CalendarEvent, error) {
	var events []*model.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
