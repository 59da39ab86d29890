package extractor

import (
	"fmt"
	"time"
)

// systemPrompt pins the assistant to JSON-only event extraction.
const systemPrompt = "You are an AI assistant that extracts event information from text. Return only valid JSON."

// buildExtractionPrompt embeds the raw text and the target schema along with
// the date disambiguation rules the model tends to get wrong: exact day
// numbers, current-year assumption, and the operating timezone offset.
func buildExtractionPrompt(text string, now time.Time, loc *time.Location) string {
	year := now.In(loc).Year()
	offset := now.In(loc).Format("-07:00")

	return fmt.Sprintf(`You are an expert at extracting event information from text. Look for event titles, dates, times, and locations.

Extract event information from this text and return a JSON object with the following structure:
{
    "title": "Event title or name (be specific, not generic)",
    "startDateTime": "ISO 8601 date string in the local timezone (YYYY-MM-DDTHH:MM:SS%[2]s) or null if not found",
    "endDateTime": "ISO 8601 date string in the local timezone (YYYY-MM-DDTHH:MM:SS%[2]s) or null if not found",
    "location": "Specific location/venue/address or null if not found",
    "description": "Event description, details, or additional context or null if not found",
    "confidence": 0.0-1.0 confidence score based on how clear the event information is
}

CRITICAL DATE EXTRACTION RULES:
- Extract the EXACT date shown in the text, do not guess or assume
- If you see "Aug 5" or "8/5", extract as %[1]d-08-05T18:30:00%[2]s
- Pay close attention to the specific day number in the text
- Do not confuse similar-looking dates (5 vs 10, 1 vs 7, etc.)
- If the date is ambiguous, use the most specific date mentioned
- Current year is %[1]d, so "Aug 5" = %[1]d-08-05
- ALWAYS use the %[2]s timezone offset
- If you see "6:30 PM", extract as T18:30:00%[2]s
- If you see "6:30 PM - 8:30 PM", extract startDateTime as T18:30:00%[2]s and endDateTime as T20:30:00%[2]s
- If you see "6:30-8:30 PM", extract startDateTime as T18:30:00%[2]s and endDateTime as T20:30:00%[2]s
- If only start time is given, set endDateTime to null (will default to 1 hour later)

Important:
- Look for actual event names, specific dates/times, and real locations
- If the date is in the past, assume it's for the current year or next year
- Don't make up information
- For dates like "Aug 10" or "8/10", assume current year (%[1]d) unless clearly specified otherwise

Text to analyze:
%[3]s

Return only the JSON object, no additional text or explanations.`, year, offset, text)
}
