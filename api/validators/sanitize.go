package validators

import "strings"

// SanitizeString trims surrounding whitespace and hard-caps the length.
// Sort columns and search keywords pass through here before reaching SQL.
func SanitizeString(input string, maxLen int) string {
	out := strings.TrimSpace(input)
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
