package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Source tags where a pipeline result came from: the model path or the
// deterministic fallback path. Both surface as plain values; the tag lets
// callers tell a genuine extraction from a degraded one.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// ExtractedEventInfo is the structured result of running raw screenshot text
// through the extraction pipeline. Every field except RawText, Confidence,
// and Source may be absent. Source records which path produced the record so
// the provenance survives persistence.
type ExtractedEventInfo struct {
	RawText       string     `json:"raw_text"`
	Title         *string    `json:"title,omitempty"`
	StartDateTime *time.Time `json:"start_date_time,omitempty"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Confidence    float64    `json:"confidence"`
	Source        Source     `json:"source,omitempty"`
}

// CalendarEvent is a user-facing calendar entry. ID is assigned once at
// creation and is the key for all update/delete operations; it is never
// regenerated.
type CalendarEvent struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	Location        string              `json:"location,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	ExtractedInfo   *ExtractedEventInfo `json:"extracted_info,omitempty"`
	ExternalEventID string              `json:"external_event_id,omitempty"`
}

// NewID returns a fresh opaque identity for events and route segments.
func NewID() string {
	return uuid.NewString()
}

// LocationCoordinate pairs a point with an optional human-readable address.
// Coordinates are advisory: they frequently come from the static landmark
// table or the default city-center point, not from real geocoding.
type LocationCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// TransportationMode is a closed set of travel modes. Inside the pipelines it
// is an opaque tag copied from the model response or fixed by the fallback.
type TransportationMode string

const (
	ModeWalking   TransportationMode = "walking"
	ModeSubway    TransportationMode = "subway"
	ModeBus       TransportationMode = "bus"
	ModeTaxi      TransportationMode = "taxi"
	ModeRideshare TransportationMode = "rideshare"
	ModeDriving   TransportationMode = "driving"
)

// ParseTransportationMode maps a raw mode string to a known mode, defaulting
// to subway for anything unrecognized.
func ParseTransportationMode(raw string) TransportationMode {
	switch TransportationMode(raw) {
	case ModeWalking, ModeSubway, ModeBus, ModeTaxi, ModeRideshare, ModeDriving:
		return TransportationMode(raw)
	default:
		return ModeSubway
	}
}

// DisplayName returns the human-readable label for the mode.
func (m TransportationMode) DisplayName() string {
	switch m {
	case ModeWalking:
		return "Walking"
	case ModeSubway:
		return "Subway"
	case ModeBus:
		return "Bus"
	case ModeTaxi:
		return "Taxi"
	case ModeRideshare:
		return "Rideshare"
	case ModeDriving:
		return "Driving"
	default:
		return string(m)
	}
}

// RouteSegment is one leg of a planned route. ArrivalTime is pinned to the
// associated event's start time; DepartureTime is ArrivalTime minus the
// travel time.
type RouteSegment struct {
	ID            string             `json:"id"`
	FromLocation  LocationCoordinate `json:"from_location"`
	ToLocation    LocationCoordinate `json:"to_location"`
	Mode          TransportationMode `json:"transportation_mode"`
	TravelTime    int                `json:"travel_time"` // seconds
	Cost          float64            `json:"cost"`
	Instructions  string             `json:"instructions"`
	DepartureTime time.Time          `json:"departure_time"`
	ArrivalTime   time.Time          `json:"arrival_time"`
}

// FormattedTravelTime renders the travel time as "1h 5m" or "45m".
func (s RouteSegment) FormattedTravelTime() string {
	minutes := s.TravelTime / 60
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormattedCost renders the cost as a dollar amount.
func (s RouteSegment) FormattedCost() string {
	return fmt.Sprintf("$%.2f", s.Cost)
}

// RoutePlan is an ordered sequence of segments, one inbound leg per event.
type RoutePlan struct {
	Segments        []RouteSegment `json:"segments"`
	TotalTravelTime int            `json:"total_travel_time"` // seconds
	TotalCost       float64        `json:"total_cost"`
}
