package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

// fallbackConfidence is the fixed low score assigned to heuristic results.
const fallbackConfidence = 0.3

var locationPattern = regexp.MustCompile(`Location[\s\n]*[^\n]+`)

// Fallback derives a low-confidence event record from the raw text alone.
// It is the failure handler for the model path and returns a value
// unconditionally. The title is the first non-empty line that is not a
// Date/Time/Location label line; times default to now through one hour from
// now.
func Fallback(text string, now time.Time) model.ExtractedEventInfo {
	title := "Event"
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "Date") || strings.Contains(trimmed, "Time") || strings.Contains(trimmed, "Location") {
			continue
		}
		title = trimmed
		break
	}

	var location *string
	if match := strings.TrimSpace(locationPattern.FindString(text)); match != "" {
		location = &match
	}

	description := text
	start := now
	end := now.Add(time.Hour)

	return model.ExtractedEventInfo{
		RawText:       text,
		Title:         &title,
		StartDateTime: &start,
		EndDateTime:   &end,
		Location:      location,
		Description:   &description,
		Confidence:    fallbackConfidence,
		Source:        model.SourceFallback,
	}
}
