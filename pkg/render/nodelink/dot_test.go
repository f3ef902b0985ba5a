package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
)

func testDiagram() flow.Diagram {
	ds := dataset.New([]dataset.Record{
		{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "3,000", 2014: "2,000"}},
		{Country: "Iraq", Region: "Asia", Values: map[int]string{2013: "1,000", 2014: "1,500"}},
		{Country: "Nepal", Region: "Asia", Values: map[int]string{2013: "10", 2014: "20"}},
	})
	return flow.Build(ds, []string{"Asia"}, []int{2013, 2014}, flow.Options{TopN: 2})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDiagram(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`subgraph "year_2013"`,
		`"Syria@2013"`,
		`"(Other)@2014"`,
		`"Syria@2013" -> "Syria@2014"`,
		`"(Other)@2013" -> "(Other)@2014"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTOtherStyle(t *testing.T) {
	dot := ToDOT(testDiagram(), Options{})
	if !strings.Contains(dot, "dashed") || !strings.Contains(dot, "lightgrey") {
		t.Error("catch-all nodes should be dashed and grey")
	}
	if !strings.Contains(dot, `label="Other (1)"`) {
		t.Error("catch-all label should count its countries")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testDiagram(), Options{Detailed: true})
	if !strings.Contains(dot, `2013: 3,000`) {
		t.Errorf("detailed node label missing value:\n%s", dot)
	}
	if !strings.Contains(dot, `label="2,000"`) {
		t.Errorf("detailed edge label missing value:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(flow.Diagram{}, Options{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "subgraph") {
		t.Errorf("empty diagram produced content:\n%s", dot)
	}
}

func TestPenWidth(t *testing.T) {
	tests := []struct {
		v, max, want float64
	}{
		{0, 0, minPenWidth},
		{10, 10, maxPenWidth},
		{0, 10, minPenWidth},
	}
	for _, tt := range tests {
		if got := penWidth(tt.v, tt.max); got != tt.want {
			t.Errorf("penWidth(%v, %v) = %v, want %v", tt.v, tt.max, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if plain := []byte(`<svg><g/></svg>`); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
