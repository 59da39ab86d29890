package llm

import (
	"encoding/json"
	"fmt"
)

// EventInfoResponse is the wire shape of an event-info reply. Every field may
// be null; Confidence defaults are applied by the caller, not here.
type EventInfoResponse struct {
	Title         *string  `json:"title"`
	StartDateTime *string  `json:"startDateTime"`
	EndDateTime   *string  `json:"endDateTime"`
	Location      *string  `json:"location"`
	Description   *string  `json:"description"`
	Confidence    *float64 `json:"confidence"`
}

// RouteSegmentData is the wire shape of one segment in a route-plan reply.
// All fields are required; TravelTime and Cost must be literal numbers, so an
// expression string like "18 * 60" fails the decode rather than being
// evaluated.
type RouteSegmentData struct {
	FromLocation *string  `json:"fromLocation"`
	ToLocation   *string  `json:"toLocation"`
	Mode         *string  `json:"transportationMode"`
	TravelTime   *int     `json:"travelTime"`
	Cost         *float64 `json:"cost"`
	Instructions *string  `json:"instructions"`
}

// RoutePlanResponse is the wire shape of a route-plan reply.
type RoutePlanResponse struct {
	Segments        []RouteSegmentData `json:"segments"`
	TotalTravelTime *int               `json:"totalTravelTime"`
	TotalCost       *float64           `json:"totalCost"`
}

// ParseEventInfo decodes sanitized text into an event-info record. Structural
// failures are reported as errors; they never panic across the pipeline
// boundary.
func ParseEventInfo(sanitized string) (*EventInfoResponse, error) {
	var resp EventInfoResponse
	if err := json.Unmarshal([]byte(sanitized), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse event info JSON: %w", err)
	}
	return &resp, nil
}

// ParseRoutePlan decodes sanitized text into a route-plan record and rejects
// replies with missing required fields or negative times and costs.
func ParseRoutePlan(sanitized string) (*RoutePlanResponse, error) {
	var resp RoutePlanResponse
	if err := json.Unmarshal([]byte(sanitized), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse route plan JSON: %w", err)
	}

	if resp.Segments == nil {
		return nil, fmt.Errorf("route plan is missing segments")
	}
	if resp.TotalTravelTime == nil || resp.TotalCost == nil {
		return nil, fmt.Errorf("route plan is missing totals")
	}

	for i, seg := range resp.Segments {
		if seg.FromLocation == nil || seg.ToLocation == nil || seg.Mode == nil ||
			seg.TravelTime == nil || seg.Cost == nil || seg.Instructions == nil {
			return nil, fmt.Errorf("segment %d is missing required fields", i)
		}
		if *seg.TravelTime < 0 {
			return nil, fmt.Errorf("segment %d has negative travel time", i)
		}
		if *seg.Cost < 0 {
			return nil, fmt.Errorf("segment %d has negative cost", i)
		}
	}

	return &resp, nil
}
