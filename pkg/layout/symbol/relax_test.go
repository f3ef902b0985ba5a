package symbol

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/geo"
)

func clusteredNodes() []Node {
	return []Node{
		{Country: "A", AnchorX: 200, AnchorY: 100, Radius: 20},
		{Country: "B", AnchorX: 205, AnchorY: 102, Radius: 12},
		{Country: "C", AnchorX: 198, AnchorY: 97, Radius: 8},
		{Country: "D", AnchorX: 200, AnchorY: 100, Radius: 8},
		{Country: "E", AnchorX: 260, AnchorY: 140, Radius: 3},
	}
}

func TestRelaxEmpty(t *testing.T) {
	got := Relax(nil, nil, DefaultIterations)
	if got == nil || len(got) != 0 {
		t.Errorf("Relax(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestRelaxDeterministic(t *testing.T) {
	zone := geo.Zone{CenterX: 210, CenterY: 110, HalfWidth: 10, HalfHeight: 5, RotationDegrees: 15}
	a := Relax(clusteredNodes(), &zone, DefaultIterations)
	b := Relax(clusteredNodes(), &zone, DefaultIterations)
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical input differ")
	}
}

func TestRelaxDoesNotMutateInput(t *testing.T) {
	in := clusteredNodes()
	before := clusteredNodes()
	_ = Relax(in, nil, DefaultIterations)
	if !reflect.DeepEqual(in, before) {
		t.Error("Relax modified its input")
	}
}

func TestRelaxLoneNodeStaysOnAnchor(t *testing.T) {
	in := []Node{{Country: "A", AnchorX: 50, AnchorY: 60, Radius: 10}}
	got := Relax(in, nil, DefaultIterations)
	if got[0].X != 50 || got[0].Y != 60 {
		t.Errorf("lone node moved to (%v, %v)", got[0].X, got[0].Y)
	}
}

func TestRelaxZeroIterations(t *testing.T) {
	got := Relax(clusteredNodes(), nil, 0)
	for _, n := range got {
		if n.X != n.AnchorX || n.Y != n.AnchorY {
			t.Errorf("%s moved without ticks", n.Country)
		}
	}
}

func TestRelaxSeparatesOverlaps(t *testing.T) {
	got := Relax(clusteredNodes(), nil, DefaultIterations)
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			a, b := got[i], got[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < 0.9*(a.Radius+b.Radius) {
				t.Errorf("%s and %s still overlap: distance %.2f, radii %.0f+%.0f",
					a.Country, b.Country, d, a.Radius, b.Radius)
			}
		}
	}
}

func TestRelaxCoincidentCentersSplit(t *testing.T) {
	in := []Node{
		{Country: "A", AnchorX: 100, AnchorY: 100, Radius: 5},
		{Country: "B", AnchorX: 100, AnchorY: 100, Radius: 5},
	}
	got := Relax(in, nil, DefaultIterations)
	if got[0].X == got[1].X && got[0].Y == got[1].Y {
		t.Error("coincident nodes were not separated")
	}
}

func TestRelaxPushesOutOfZone(t *testing.T) {
	zone := geo.Zone{CenterX: 100, CenterY: 76, HalfWidth: 30, HalfHeight: 15, RotationDegrees: 15}
	in := []Node{{Country: "Mexico", AnchorX: 104, AnchorY: 80, Radius: 6}}

	withZone := Relax(in, &zone, DefaultIterations)[0]
	without := Relax(in, nil, DefaultIterations)[0]

	d0 := math.Hypot(without.X-zone.CenterX, without.Y-zone.CenterY)
	d1 := math.Hypot(withZone.X-zone.CenterX, withZone.Y-zone.CenterY)
	if d1 <= d0 {
		t.Errorf("zone did not push the node away: %.2f <= %.2f", d1, d0)
	}
	// Push is along center→node, so the direction from the center is kept.
	if withZone.X <= zone.CenterX || withZone.Y <= zone.CenterY {
		t.Errorf("node pushed the wrong way: (%.2f, %.2f)", withZone.X, withZone.Y)
	}
}

func TestLayoutRadiusMonotonic(t *testing.T) {
	inputs := []Input{
		{Country: "X", Value: dataset.Value{Magnitude: 1000}, Anchor: geo.Point{X: 100, Y: 100}},
		{Country: "Y", Value: dataset.Value{Magnitude: 500}, Anchor: geo.Point{X: 300, Y: 100}},
		{Country: "Z", Value: dataset.Value{Magnitude: 0}, Anchor: geo.Point{X: 200, Y: 200}},
	}
	got := Layout(inputs, nil, NewSqrtScale(1000))

	if got[0].Radius != MaxRadius {
		t.Errorf("largest radius = %v, want %v", got[0].Radius, MaxRadius)
	}
	if !(got[0].Radius > got[1].Radius && got[1].Radius > got[2].Radius) {
		t.Errorf("radii not ordered by magnitude: %v, %v, %v", got[0].Radius, got[1].Radius, got[2].Radius)
	}
	if got[2].Radius != 0 {
		t.Errorf("zero magnitude radius = %v", got[2].Radius)
	}
}

func TestLayoutWithIterations(t *testing.T) {
	inputs := []Input{
		{Country: "A", Value: dataset.Value{Magnitude: 10}, Anchor: geo.Point{X: 10, Y: 10}},
		{Country: "B", Value: dataset.Value{Magnitude: 10}, Anchor: geo.Point{X: 11, Y: 10}},
	}
	got := Layout(inputs, nil, NewSqrtScale(10), WithIterations(0))
	if got[0].X != 10 || got[1].X != 11 {
		t.Error("WithIterations(0) should leave nodes on their anchors")
	}
}

func TestTotal(t *testing.T) {
	nodes := []Node{
		{Magnitude: 1000},
		{Magnitude: 500},
		{Magnitude: dataset.SuppressedMagnitude, Suppressed: true},
	}
	if got := Total(nodes); got != 1500 {
		t.Errorf("Total = %v, want 1500", got)
	}
}
