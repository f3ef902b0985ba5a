package errors

import (
	"strings"
	"unicode"
)

// Year bounds accepted by the selection validators. Dataset columns outside
// this window are still loaded; they just cannot be selected.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ValidateYear checks that year is a plausible 4-digit calendar year.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidYear, "year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	return nil
}

// ValidateYearRange checks both endpoints and their order.
func ValidateYearRange(start, end int) error {
	if err := ValidateYear(start); err != nil {
		return err
	}
	if err := ValidateYear(end); err != nil {
		return err
	}
	if start > end {
		return New(ErrCodeInvalidYear, "start year %d is after end year %d", start, end)
	}
	return nil
}

// ValidatePath validates an output or dataset path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
