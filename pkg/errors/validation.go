package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateEventID validates an event identifier for safety and
// correctness. Event IDs become file names, Redis keys, and MongoDB
// document IDs, so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateEventID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEventID, "event id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidEventID, "event id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEventID, "event id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidEventID, "event id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB hex color strings.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color string.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", color)
	}

	return nil
}

// maxSeatCount is a sanity bound on per-table capacity; the largest
// real-world banquet rounds seat about 20.
const maxSeatCount = 50

// ValidateSeatCount validates a per-table seat count.
func ValidateSeatCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "seat count must be at least 1")
	}

	if n > maxSeatCount {
		return New(ErrCodeInvalidInput, "seat count too large (max %d)", maxSeatCount)
	}

	return nil
}

// ValidateFloorSize validates floor plan dimensions in floor pixels.
func ValidateFloorSize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "floor dimensions must be positive")
	}

	const maxDimension = 100000
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidInput, "floor dimensions too large (max %d)", maxDimension)
	}

	return nil
}

// ValidateGuestName validates a guest display name.
func ValidateGuestName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "guest name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "guest name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "guest name contains invalid control characters")
		}
	}

	return nil
}
