package flow

import "fmt"

// OtherLabel names the catch-all category.
const OtherLabel = "Other"

// Category is a node's identity within a column. A real country named
// "Other" stays distinct from the catch-all through IsOther.
type Category struct {
	Label   string `json:"label"`
	IsOther bool   `json:"is_other,omitempty"`
}

func (c Category) String() string {
	if c.IsOther {
		return "(" + c.Label + ")"
	}
	return c.Label
}

// NodeKey identifies a node across the diagram.
type NodeKey struct {
	Category Category `json:"category"`
	Year     int      `json:"year"`
}

func (k NodeKey) String() string { return fmt.Sprintf("%s@%d", k.Category, k.Year) }

// Node is one category bar in one column.
type Node struct {
	Category Category `json:"category"`
	Year     int      `json:"year"`
	Value    float64  `json:"value"`
	X0       float64  `json:"x0"`
	X1       float64  `json:"x1"`
	Y0       float64  `json:"y0"`
	Y1       float64  `json:"y1"`

	// Countries lists the countries the node aggregates, in rank order.
	Countries []string `json:"countries"`
}

// Key returns the node's identity.
func (n Node) Key() NodeKey { return NodeKey{Category: n.Category, Year: n.Year} }

// Height returns the node's pixel height.
func (n Node) Height() float64 { return n.Y1 - n.Y0 }

// Link is a merged flow between two nodes of adjacent columns.
type Link struct {
	Source NodeKey `json:"source"`
	Target NodeKey `json:"target"`

	// SourceIndex and TargetIndex index Diagram.Nodes.
	SourceIndex int     `json:"source_index"`
	TargetIndex int     `json:"target_index"`
	Value       float64 `json:"value"`

	// SY0..SY1 is the band inside the source node, TY0..TY1 inside the
	// target node. Each end is scaled by its own column.
	SY0 float64 `json:"sy0"`
	SY1 float64 `json:"sy1"`
	TY0 float64 `json:"ty0"`
	TY1 float64 `json:"ty1"`

	// Countries lists the countries merged into this link.
	Countries []string `json:"countries"`
}

// Column is one year's nodes.
type Column struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Nodes []Node  `json:"nodes"`
}

// Diagram is a complete flow layout. The zero value is the empty diagram.
type Diagram struct {
	Years   []int     `json:"years"`
	Regions []string  `json:"regions"`
	Nodes   []Node    `json:"nodes"`
	Links   []Link    `json:"links"`
	Totals  []float64 `json:"totals"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Options Options   `json:"options"`
}

// Empty reports whether the diagram has nothing to draw.
func (d Diagram) Empty() bool { return len(d.Nodes) == 0 }

// Columns groups nodes by year in column order.
func (d Diagram) Columns() []Column {
	if d.Empty() {
		return nil
	}
	cols := make([]Column, len(d.Years))
	idx := make(map[int]int, len(d.Years))
	for i, y := range d.Years {
		cols[i] = Column{Year: y}
		if i < len(d.Totals) {
			cols[i].Total = d.Totals[i]
		}
		idx[y] = i
	}
	for _, n := range d.Nodes {
		i := idx[n.Year]
		cols[i].Nodes = append(cols[i].Nodes, n)
	}
	return cols
}

// NodeByKey finds a node by category and year.
func (d Diagram) NodeByKey(k NodeKey) (Node, bool) {
	for _, n := range d.Nodes {
		if n.Key() == k {
			return n, true
		}
	}
	return Node{}, false
}

// Outgoing sums the link values leaving the node at index i.
func (d Diagram) Outgoing(i int) float64 {
	var sum float64
	for _, l := range d.Links {
		if l.SourceIndex == i {
			sum += l.Value
		}
	}
	return sum
}
