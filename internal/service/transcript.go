package service

import (
	"strings"

	"lumensense/internal/model"
)

// FlattenTranscript joins role-tagged messages into a single line-delimited
// transcript, one "Role: content" line per message, preserving input order.
// Pure function; the role's first letter is upper-cased, the rest kept as-is.
func FlattenTranscript(messages []model.ChatMessage) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(capitalize(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// HasContent reports whether any message carries non-whitespace content.
// Validation uses this rather than the flattened transcript so role prefixes
// cannot mask an effectively empty conversation.
func HasContent(messages []model.ChatMessage) bool {
	for _, msg := range messages {
		if strings.TrimSpace(msg.Content) != "" {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
