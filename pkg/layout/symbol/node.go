package symbol

import (
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/geo"
)

// Node is one country's circle in a single frame.
type Node struct {
	Country    string  `json:"country"`
	Region     string  `json:"region"`
	Magnitude  float64 `json:"magnitude"`
	Suppressed bool    `json:"suppressed,omitempty"`
	AnchorX    float64 `json:"anchor_x"`
	AnchorY    float64 `json:"anchor_y"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Radius     float64 `json:"radius"`
}

// Input is a country's value and projected anchor before layout.
type Input struct {
	Country string
	Region  string
	Value   dataset.Value
	Anchor  geo.Point
}

// Moved returns how far the node drifted from its anchor.
func (n Node) Moved() (dx, dy float64) { return n.X - n.AnchorX, n.Y - n.AnchorY }

// Total sums the magnitudes of non-suppressed nodes.
func Total(nodes []Node) float64 {
	var sum float64
	for _, n := range nodes {
		if !n.Suppressed {
			sum += n.Magnitude
		}
	}
	return sum
}
