package frames

import (
	"fmt"
	"strings"
)

// Mode chooses which years of a range become frames.
type Mode string

const (
	// ModeEveryYear produces one frame per integer year in the range.
	ModeEveryYear Mode = "every-year"
	// ModeEndpoints produces frames for the first and last year only.
	ModeEndpoints Mode = "endpoints"
	// ModeSingle produces one frame for Start (or End when Start is unset).
	ModeSingle Mode = "single"
)

// ParseMode accepts the CLI spellings of a mode. The empty string is
// [ModeEveryYear].
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeEveryYear, "every", "all":
		return ModeEveryYear, nil
	case ModeEndpoints, "ends":
		return ModeEndpoints, nil
	case ModeSingle:
		return ModeSingle, nil
	}
	return "", fmt.Errorf("unknown mode %q (want every-year, endpoints or single)", s)
}

// Selection is the user's map query. Zero years mean unset.
type Selection struct {
	Regions []string `json:"regions"`
	Start   int      `json:"start,omitempty"`
	End     int      `json:"end,omitempty"`
	Mode    Mode     `json:"mode,omitempty"`
}

// Years returns the frame years in display order. A reversed range is
// normalized to ascending.
func (s Selection) Years() []int {
	start, end := s.Start, s.End
	switch {
	case start == 0 && end == 0:
		return nil
	case start == 0:
		return []int{end}
	case end == 0, s.Mode == ModeSingle:
		return []int{start}
	}
	if start > end {
		start, end = end, start
	}
	if start == end {
		return []int{start}
	}
	if s.Mode == ModeEndpoints {
		return []int{start, end}
	}
	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return years
}

// Empty reports whether the selection can produce no frame.
func (s Selection) Empty() bool {
	return len(s.Regions) == 0 || len(s.Years()) == 0
}
