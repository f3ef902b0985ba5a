package frames

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/geo"
)

func testData() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "1,000", 2014: "2,000", 2015: "D"}},
		{Country: "Iraq", Region: "Asia", Values: map[int]string{2013: "500", 2014: "100", 2015: "300"}},
		{Country: "Atlantis", Region: "Asia", Values: map[int]string{2013: "700"}},
		{Country: "Eritrea", Region: "Africa", Values: map[int]string{2013: "900", 2014: "900"}},
		{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "5"}},
	})
}

func nodeByCountry(f Frame, country string) (int, bool) {
	for i, n := range f.Nodes {
		if n.Country == country {
			return i, true
		}
	}
	return -1, false
}

func TestBuildSingleYear(t *testing.T) {
	res := Build(testData(), geo.NewAdapter(), Selection{Regions: []string{"Asia"}, Start: 2013})

	if len(res.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(res.Frames))
	}
	f := res.Frames[0]
	if len(f.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (missing geometry and duplicates dropped)", len(f.Nodes))
	}
	x, _ := nodeByCountry(f, "Syria")
	y, _ := nodeByCountry(f, "Iraq")
	if f.Nodes[x].Radius <= f.Nodes[y].Radius {
		t.Errorf("radius(Syria)=%v should exceed radius(Iraq)=%v", f.Nodes[x].Radius, f.Nodes[y].Radius)
	}
	if f.Total != 1500 {
		t.Errorf("Total = %v, want 1500", f.Total)
	}
	if !slices.Equal(res.Missing, []string{"Atlantis"}) {
		t.Errorf("Missing = %v", res.Missing)
	}
	if res.Zone == nil {
		t.Error("default observer zone not applied")
	}
}

func TestBuildRangeIndependentFrames(t *testing.T) {
	res := Build(testData(), geo.NewAdapter(), Selection{Regions: []string{"Asia"}, Start: 2013, End: 2015})

	if !slices.Equal(res.Years(), []int{2013, 2014, 2015}) {
		t.Fatalf("years = %v", res.Years())
	}
	wantTotals := []float64{1500, 2100, 300}
	for i, f := range res.Frames {
		if f.Total != wantTotals[i] {
			t.Errorf("%d total = %v, want %v", f.Year, f.Total, wantTotals[i])
		}
	}
	if res.MaxMagnitude != 2000 {
		t.Errorf("MaxMagnitude = %v, want 2000 across all frames", res.MaxMagnitude)
	}

	// The suppressed cell draws with the placeholder magnitude.
	i, _ := nodeByCountry(res.Frames[2], "Syria")
	n := res.Frames[2].Nodes[i]
	if !n.Suppressed || n.Magnitude != dataset.SuppressedMagnitude || n.Radius == 0 {
		t.Errorf("suppressed node = %+v", n)
	}

	single := Build(testData(), geo.NewAdapter(), Selection{Regions: []string{"Asia"}, Start: 2014})
	if single.Frames[0].Total != res.Frames[1].Total {
		t.Error("a frame's total must depend on its own year only")
	}
}

func TestBuildEndpoints(t *testing.T) {
	sel := Selection{Regions: []string{"Asia", "Africa"}, Start: 2013, End: 2015, Mode: ModeEndpoints}
	res := Build(testData(), geo.NewAdapter(), sel)
	if !slices.Equal(res.Years(), []int{2013, 2015}) {
		t.Errorf("years = %v", res.Years())
	}
}

func TestBuildEmpty(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
	}{
		{"no regions", Selection{Start: 2013}},
		{"no year", Selection{Regions: []string{"Asia"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Build(testData(), geo.NewAdapter(), tt.sel)
			if !res.Empty() {
				t.Errorf("expected empty result, got %d frames", len(res.Frames))
			}
			if res.Width != geo.ReferenceWidth {
				t.Errorf("empty result should still carry the frame size")
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	sel := Selection{Regions: []string{"Asia", "Africa"}, Start: 2013, End: 2014}
	a := Build(testData(), geo.NewAdapter(), sel)
	b := Build(testData(), geo.NewAdapter(), sel)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical selections produced different frames")
	}
}

func TestBuildWithoutObserverZone(t *testing.T) {
	res := Build(testData(), geo.NewAdapter(), Selection{Regions: []string{"Asia"}, Start: 2013},
		WithObserver("Canada"), WithIterations(0))
	if res.Zone != nil {
		t.Error("unknown observer should disable the zone")
	}
	for _, n := range res.Frames[0].Nodes {
		if n.X != n.AnchorX || n.Y != n.AnchorY {
			t.Errorf("%s moved with zero iterations", n.Country)
		}
	}
}
