// Package overview stacks per-region totals for every year of a table.
package overview

import (
	"math"
	"slices"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

// Segment is one region's slice of a bar, in value space.
type Segment struct {
	Region string  `json:"region"`
	Value  float64 `json:"value"`
	Y0     float64 `json:"y0"`
	Y1     float64 `json:"y1"`
}

// Bar is one year's stack. Segments follow Overview.Regions.
type Bar struct {
	Year     int       `json:"year"`
	Total    float64   `json:"total"`
	Segments []Segment `json:"segments"`
}

// Overview is the stacked chart of a whole table.
type Overview struct {
	Years   []int    `json:"years"`
	Regions []string `json:"regions"`
	Bars    []Bar    `json:"bars"`
	// Max is the tallest bar rounded up to a tick-friendly value.
	Max float64 `json:"max"`
	// Skipped lists regions outside the color domain. Their rows are not
	// counted.
	Skipped []string `json:"skipped,omitempty"`
}

// Empty reports whether there are no bars.
func (o Overview) Empty() bool { return len(o.Bars) == 0 }

// Build sums every record's parsed value by region and year. Suppressed
// cells count with their placeholder magnitude.
func Build(ds *dataset.Dataset) Overview {
	var o Overview
	for _, r := range ds.Regions() {
		if region.Valid(r) {
			o.Regions = append(o.Regions, r)
		} else {
			o.Skipped = append(o.Skipped, r)
		}
	}
	order := region.All()
	slices.SortStableFunc(o.Regions, func(a, b string) int {
		return slices.Index(order, a) - slices.Index(order, b)
	})
	if len(o.Regions) == 0 {
		return o
	}

	sums := make(map[int]map[string]float64)
	for _, rec := range ds.Records {
		if rec.Country == "" || !region.Valid(rec.Region) {
			continue
		}
		for year := range rec.Values {
			v := rec.Value(year)
			if sums[year] == nil {
				sums[year] = make(map[string]float64)
			}
			sums[year][rec.Region] += v.Magnitude
		}
	}

	o.Years = ds.Years()
	var tallest float64
	for _, year := range o.Years {
		bar := Bar{Year: year}
		y := 0.0
		for _, r := range o.Regions {
			v := sums[year][r]
			bar.Segments = append(bar.Segments, Segment{Region: r, Value: v, Y0: y, Y1: y + v})
			y += v
		}
		bar.Total = y
		tallest = max(tallest, y)
		o.Bars = append(o.Bars, bar)
	}
	o.Max = Nice(tallest)
	return o
}

// Nice rounds v up to a multiple of a 1, 2 or 5 step sized for about ten
// ticks.
func Nice(v float64) float64 {
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	step := tickStep(v, 10)
	return math.Ceil(v/step) * step
}

func tickStep(span float64, count int) float64 {
	raw := span / float64(count)
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	switch e := raw / base; {
	case e >= math.Sqrt(50):
		return 10 * base
	case e >= math.Sqrt(10):
		return 5 * base
	case e >= math.Sqrt(2):
		return 2 * base
	}
	return base
}

// Ticks returns axis ticks from 0 to max at a 1, 2 or 5 step sized for
// about count ticks.
func Ticks(max float64, count int) []float64 {
	if max <= 0 || count <= 0 {
		return []float64{0}
	}
	step := tickStep(max, count)
	var out []float64
	for i := 0; float64(i)*step <= max*(1+1e-9); i++ {
		out = append(out, float64(i)*step)
	}
	return out
}
