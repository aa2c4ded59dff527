package validation

import (
	"strings"
)

// ValidateUserID checks an opaque user identifier taken from a verified token.
func ValidateUserID(userID string) error {
	trimmed := strings.TrimSpace(userID)

	if trimmed == "" {
		return NewError("userId", "is required")
	}

	if len(trimmed) > 128 {
		return NewError("userId", "is too long (max 128 characters)")
	}

	return nil
}
