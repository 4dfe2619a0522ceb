package errors

import (
	"strings"
	"unicode"
)

// ValidateRadius validates a traversal radius parameter.
// Radii must be non-negative and are capped at max to bound traversal work.
func ValidateRadius(name string, value, max int) error {
	if value < 0 {
		return New(ErrCodeInvalidParameter, "%s must be >= 0, got %d", name, value)
	}
	if value > max {
		return New(ErrCodeInvalidParameter, "%s must be <= %d, got %d", name, max, value)
	}
	return nil
}

// ValidateGraphName validates a graph name used for file and store lookups.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGraph, "graph name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidGraph, "graph name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
