package dataset

import (
	"math"
	"strconv"
	"strings"
)

const (
	// SuppressedSentinel marks a cell whose count was withheld.
	SuppressedSentinel = "D"

	// SuppressedMagnitude is the placeholder magnitude for suppressed cells.
	// It is not a real count.
	SuppressedMagnitude = 50.0
)

// Value is a parsed table cell.
type Value struct {
	Magnitude  float64 `json:"magnitude"`
	Suppressed bool    `json:"suppressed"`
}

// ParseValue normalizes a raw cell. It never fails: blank, non-numeric,
// negative and non-finite text all become {0, false}. Only the exact
// sentinel is suppressed; a padded " D " is not a number either.
func ParseValue(raw string) Value {
	if raw == SuppressedSentinel {
		return Value{Magnitude: SuppressedMagnitude, Suppressed: true}
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Value{}
	}
	return Value{Magnitude: f}
}
