package app

import (
	"regexp"
	"strings"
)

// Traced statements are collapsed to one line and capped so span payloads
// stay small even for the wide result-row inserts.
const maxTracedQueryLength = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	flat := sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}
