package gcal

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

var ErrEventNotFound = errors.New("google calendar event not found")

// IsEventNotFound returns true when a Google Calendar event no longer exists.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// CreateEvent pushes a calendar event to Google Calendar and returns the
// external event ID.
func (c *Client) CreateEvent(calendarID string, event *model.CalendarEvent) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	created, err := c.service.Events.Insert(calendarID, toGoogleEvent(event)).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return created.Id, nil
}

// UpdateEvent replaces an existing Google Calendar event.
func (c *Client) UpdateEvent(calendarID, eventID string, event *model.CalendarEvent) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	_, err := c.service.Events.Update(calendarID, eventID, toGoogleEvent(event)).Do()
	if err != nil {
		return mapNotFound(err, "failed to update event")
	}
	return nil
}

// DeleteEvent deletes an event from Google Calendar.
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.service.Events.Delete(calendarID, eventID).Do(); err != nil {
		return mapNotFound(err, "failed to delete event")
	}
	return nil
}

func toGoogleEvent(event *model.CalendarEvent) *calendar.Event {
	// RFC3339 includes the offset, so Google Calendar can infer the timezone.
	return &calendar.Event{
		Summary:     event.Title,
		Description: event.Notes,
		Location:    event.Location,
		Start: &calendar.EventDateTime{
			DateTime: event.StartDate.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndDate.Format(time.RFC3339),
		},
	}
}

func mapNotFound(err error, msg string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone {
			return ErrEventNotFound
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
