package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

// systemPrompt pins the assistant to JSON-only route planning.
const systemPrompt = "You are an AI assistant that provides comprehensive route planning including segments, suggestions, and optimization. Return only valid JSON."

const promptTimeLayout = "Jan 2, 2006 3:04 PM"

// buildRoutePrompt encodes the events, their times, the starting-location
// availability, and the two invariants the model must honor: the exact
// segment count and the chain topology with no zero-length legs.
func buildRoutePrompt(events []model.CalendarEvent, start *model.LocationCoordinate, now time.Time, loc *time.Location) string {
	var details strings.Builder
	var times []string
	for _, event := range events {
		location := event.Location
		if location == "" {
			location = "No location"
		}
		fmt.Fprintf(&details, "Event: %s\nTime: %s\nLocation: %s\n",
			event.Title, event.StartDate.In(loc).Format(promptTimeLayout), location)
		times = append(times, fmt.Sprintf("%s: %s", event.Title, event.StartDate.In(loc).Format(promptTimeLayout)))
	}

	locationInfo := "User's current location is not available"
	if start != nil {
		locationInfo = "User's current location is available"
	}

	return fmt.Sprintf(`Create realistic route segments for these events in New York City.

Events for the day:
%s
Event Times: %s
Location: %s
Current time: %s

CRITICAL: You must create exactly %[5]d route segments:
1. If user location is available: Start → Event 1, Event 1 → Event 2, Event 2 → Event 3, etc.
2. If no user location: Starting Point → Event 1, Event 1 → Event 2, Event 2 → Event 3, etc.

IMPORTANT RULES:
- First segment: Starting Point → First Event Location
- Middle segments: Each event location → Next event location
- Last segment: Second-to-last event → Last event location
- NO segments that stay at the same location
- Consider event timing when choosing transportation (rush hour vs. off-peak)

Return ONLY valid JSON in this exact format:
{
  "segments": [
    {
      "fromLocation": "Starting Point",
      "toLocation": "First Event Location",
      "transportationMode": "subway",
      "travelTime": 1800,
      "cost": 2.75,
      "instructions": "Take A/C/E subway from Starting Point to First Event"
    },
    {
      "fromLocation": "First Event Location",
      "toLocation": "Second Event Location",
      "transportationMode": "walking",
      "travelTime": 900,
      "cost": 0,
      "instructions": "Walk from First Event to Second Event"
    }
  ],
  "totalTravelTime": 2700,
  "totalCost": 2.75
}

Consider:
1. Real NYC transportation options (subway, bus, walking, rideshare)
2. Actual travel times between locations
3. Realistic costs (subway $2.75, rideshare $15-25, walking free)
4. NYC geography and transit routes
5. Time of day and typical travel patterns
6. Event timing (rush hour vs. off-peak transportation choices)

IMPORTANT: You must create exactly %[5]d segments for %[5]d events.
CRITICAL: All travelTime values must be actual numbers (e.g., 1800, 900) NOT expressions (e.g., 18 * 60).
Return ONLY the JSON object, no additional text or markdown.`,
		details.String(), strings.Join(times, ", "), locationInfo,
		now.In(loc).Format(promptTimeLayout), len(events))
}
