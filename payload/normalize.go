package payload

import (
	"regexp"
	"strings"
)

// Sentinel is the wire token emitted for a dimension with no selection.
const Sentinel = "any"

var reSeparators = regexp.MustCompile(`[\s-]+`)

// Normalize turns a display label into its wire token: lowercase, "&" spelled
// out, whitespace and hyphen runs collapsed to single underscores. Idempotent.
func Normalize(label string) string {
	token := strings.ReplaceAll(label, "&", "and")
	token = strings.ToLower(strings.TrimSpace(token))
	return reSeparators.ReplaceAllLiteralString(token, "_")
}

// Tokens normalizes a committed label set. An empty set encodes as the
// sentinel, so every filter field in the payload is guaranteed non-empty.
// An explicitly selected "Any" label normalizes to the same token.
func Tokens(labels []string) []string {
	if len(labels) == 0 {
		return []string{Sentinel}
	}

	tokens := make([]string, len(labels))
	for i, label := range labels {
		tokens[i] = Normalize(label)
	}
	return tokens
}
