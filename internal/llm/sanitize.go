package llm

import "strings"

// CleanJSON strips the formatting noise models add around JSON: markdown code
// fences and any leading or trailing prose. The first '{' through the last '}'
// is kept regardless of whether a fence was found, so prose outside a fence is
// dropped too. If no braces are present the trimmed input is returned as-is
// and the parse step reports the failure.
func CleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end >= start {
		cleaned = cleaned[start : end+1]
	}

	return strings.TrimSpace(cleaned)
}
