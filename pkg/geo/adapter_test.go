package geo

import (
	"slices"
	"testing"
)

func TestProjectedPointForUsesAliases(t *testing.T) {
	a := NewAdapter()

	p, ok := a.ProjectedPointFor("Burma")
	if !ok {
		t.Fatal("Burma should resolve through the alias table")
	}
	if p.Country != "Burma" {
		t.Errorf("Country = %q, want dataset name", p.Country)
	}
	direct, _ := a.ProjectedPointFor("Myanmar")
	if p.X != direct.X || p.Y != direct.Y {
		t.Errorf("alias and direct lookups disagree: %+v vs %+v", p, direct)
	}

	if _, ok := a.ProjectedPointFor("Atlantis"); ok {
		t.Error("unknown countries must not get a synthetic position")
	}
}

func TestAlias(t *testing.T) {
	tests := map[string]string{
		"Congo, Democratic Republic": "Dem. Rep. Congo",
		"Cote d'Ivoire":              "Côte d'Ivoire",
		"South Sudan":                "S. Sudan",
		"Syria":                      "Syria",
	}
	for in, want := range tests {
		if got := Alias(in); got != want {
			t.Errorf("Alias(%q) = %q, want %q", in, got, want)
		}
	}

	for from, to := range DefaultAliases {
		if _, ok := builtinCentroids[to]; !ok {
			t.Errorf("alias %q -> %q has no built-in centroid", from, to)
		}
	}
}

func TestResolveCollectsMissing(t *testing.T) {
	a := NewAdapter()
	points, missing := a.Resolve([]string{"Syria", "Atlantis", "Iraq", "Atlantis", "Lemuria", "Syria"})

	if len(points) != 2 {
		t.Errorf("resolved %d points, want 2", len(points))
	}
	if !slices.Equal(missing, []string{"Atlantis", "Lemuria"}) {
		t.Errorf("missing = %v", missing)
	}
}

func TestExclusionZoneFor(t *testing.T) {
	z, ok := NewAdapter().ExclusionZoneFor(DefaultObserver)
	if !ok {
		t.Fatal("default observer should have a zone")
	}
	want := Zone{CenterX: 100, CenterY: 76, HalfWidth: 30, HalfHeight: 15, RotationDegrees: 15}
	if !approx(z.CenterX, want.CenterX, 1e-9) || !approx(z.CenterY, want.CenterY, 1e-9) ||
		!approx(z.HalfWidth, want.HalfWidth, 1e-9) || z.RotationDegrees != want.RotationDegrees {
		t.Errorf("zone = %+v, want %+v", z, want)
	}

	big, _ := NewAdapter(WithSize(800, 500)).ExclusionZoneFor(DefaultObserver)
	if !approx(big.CenterX, 200, 1e-9) || !approx(big.CenterY, 152, 1e-9) || !approx(big.HalfWidth, 60, 1e-9) {
		t.Errorf("scaled zone = %+v", big)
	}

	if _, ok := NewAdapter().ExclusionZoneFor("Canada"); ok {
		t.Error("observers without a silhouette should report false")
	}
}

func TestZoneOverlaps(t *testing.T) {
	z := Zone{CenterX: 100, CenterY: 76, HalfWidth: 30, HalfHeight: 15, RotationDegrees: 15}

	tests := []struct {
		name    string
		x, y, r float64
		want    bool
	}{
		{"center", 100, 76, 0, true},
		{"far away", 300, 200, 5, false},
		{"touching from outside", 100, 76 - 15/0.9659 - 20, 1, false},
		{"radius reaches in", 140, 86, 15, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.Overlaps(tt.x, tt.y, tt.r); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.r, got, tt.want)
			}
		})
	}
}

func TestZoneCornersRoundTrip(t *testing.T) {
	z := Zone{CenterX: 10, CenterY: 20, HalfWidth: 4, HalfHeight: 2, RotationDegrees: 30}
	for _, c := range z.Corners() {
		rx, ry := z.Local(c[0], c[1])
		if !approx(abs(rx), 4, 1e-9) || !approx(abs(ry), 2, 1e-9) {
			t.Errorf("corner %v maps to local (%v, %v)", c, rx, ry)
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
