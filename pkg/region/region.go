// Package region holds the closed set of world regions used to group
// countries, and the fixed color assigned to each.
//
// The domain is closed on purpose: a region name outside [All] is a
// configuration error, reported by [Validate] and [Color]. Callers validate
// user selections once at startup and fail fast.
package region

import (
	"slices"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

// Region names.
const (
	Asia         = "Asia"
	Europe       = "Europe"
	Africa       = "Africa"
	SouthAmerica = "South America"
	NorthAmerica = "North America"
	Oceania      = "Oceania"
)

var ordered = []string{Asia, Europe, Africa, SouthAmerica, NorthAmerica, Oceania}

var colors = map[string]string{
	Asia:         "#1f78b4",
	Europe:       "#33a02c",
	Africa:       "#e31a1c",
	SouthAmerica: "#ff7f00",
	NorthAmerica: "#6a3d9a",
	Oceania:      "#b15928",
}

// All returns every region in display order.
func All() []string {
	return slices.Clone(ordered)
}

// Color returns the fill color for name.
func Color(name string) (string, error) {
	c, ok := colors[name]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidRegion, "unknown region %q (valid: %v)", name, ordered)
	}
	return c, nil
}

// MustColor is like [Color] but panics on an unknown region. Renderers use it
// after the selection has been validated.
func MustColor(name string) string {
	c, err := Color(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether name belongs to the region domain.
func Valid(name string) bool {
	_, ok := colors[name]
	return ok
}

// Validate checks every name and returns the first unknown one as an
// INVALID_REGION error.
func Validate(names []string) error {
	for _, n := range names {
		if !Valid(n) {
			return errors.New(errors.ErrCodeInvalidRegion, "unknown region %q (valid: %v)", n, ordered)
		}
	}
	return nil
}

// Normalize validates names and returns them deduplicated in display order.
func Normalize(names []string) ([]string, error) {
	if err := Validate(names); err != nil {
		return nil, err
	}
	var out []string
	for _, r := range ordered {
		if slices.Contains(names, r) {
			out = append(out, r)
		}
	}
	return out, nil
}
