package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
)

// Flow canvas margins around the diagram.
const (
	flowOffsetX     = 150.0
	flowMarginTop   = 20.0
	flowYearOffset  = 40.0
	flowMarginBelow = 80.0
	flowLabelOffset = 70.0
	flowLinkOpacity = 0.4
)

// RenderFlowSVG draws columns as bars, links as ribbons and labels on the
// outer columns. An empty diagram renders an empty canvas.
func RenderFlowSVG(d flow.Diagram) ([]byte, error) {
	opts := d.Options
	if opts.ColumnHeight == 0 {
		opts.ColumnHeight = flow.DefaultColumnHeight
	}
	if opts.ColumnSpacing == 0 {
		opts.ColumnSpacing = flow.DefaultColumnSpacing
	}
	w := opts.ColumnSpacing + 2*flowOffsetX
	h := opts.ColumnHeight + flowMarginTop + flowMarginBelow

	var buf bytes.Buffer
	svgOpen(&buf, w, h)
	if d.Empty() {
		buf.WriteString("</svg>\n")
		return buf.Bytes(), nil
	}

	colors := categoryColors(d.Nodes)
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(flowOffsetX), num(flowMarginTop))

	buf.WriteString(`    <g class="links">` + "\n")
	for _, l := range d.Links {
		src, tgt := d.Nodes[l.SourceIndex], d.Nodes[l.TargetIndex]
		fmt.Fprintf(&buf, `      <path d="%s" fill="%s" fill-opacity="%s"><title>%s</title></path>`+"\n",
			ribbon(src.X1, l.SY0, l.SY1, tgt.X0, l.TY0, l.TY1),
			colors[src.Category], num(flowLinkOpacity),
			escapeXML(fmt.Sprintf("%s → %s: %s", src.Key(), tgt.Key(), formatCount(l.Value))))
	}
	buf.WriteString("    </g>\n")

	cols := d.Columns()
	buf.WriteString(`    <g class="nodes">` + "\n")
	for ci, col := range cols {
		for _, n := range col.Nodes {
			fmt.Fprintf(&buf, `      <rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s</title></rect>`+"\n",
				num(n.X0), num(n.Y0), num(n.X1-n.X0), num(n.Height()), colors[n.Category],
				escapeXML(fmt.Sprintf("%s %d: %s", n.Category.Label, n.Year, formatCount(n.Value))))
			switch ci {
			case 0:
				nodeLabel(&buf, n, n.X0, n.X0-flowLabelOffset, "end")
			case len(cols) - 1:
				nodeLabel(&buf, n, n.X1, n.X1+flowLabelOffset, "start")
			}
		}
	}
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="years">` + "\n")
	for _, col := range cols {
		n := col.Nodes[0]
		fmt.Fprintf(&buf, `      <text x="%s" y="%s" text-anchor="middle" font-size="14" font-weight="bold">%d</text>`+"\n",
			num((n.X0+n.X1)/2), num(opts.ColumnHeight+flowYearOffset), col.Year)
	}
	buf.WriteString("    </g>\n  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

// nodeLabel draws a leader line from the node edge and the label text.
func nodeLabel(buf *bytes.Buffer, n flow.Node, edge, x float64, anchor string) {
	mid := (n.Y0 + n.Y1) / 2
	end := x + 5
	if anchor == "start" {
		end = x - 5
	}
	size := math.Min(math.Max(n.Height()-2, 6), 12)
	fmt.Fprintf(buf, `      <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#999" stroke-width="0.5"/>`+"\n",
		num(edge), num(mid), num(end), num(mid))
	fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-size="%s">%s</text>`+"\n",
		num(x), num(mid), anchor, num(size), escapeXML(n.Category.Label))
}

// ribbon returns a closed band between two vertical spans joined by
// horizontal cubic curves.
func ribbon(x0, y00, y01, x1, y10, y11 float64) string {
	mx := (x0 + x1) / 2
	return fmt.Sprintf("M%s,%sC%s,%s %s,%s %s,%sL%s,%sC%s,%s %s,%s %s,%sZ",
		num(x0), num(y00), num(mx), num(y00), num(mx), num(y10), num(x1), num(y10),
		num(x1), num(y11), num(mx), num(y11), num(mx), num(y01), num(x0), num(y01))
}

// categoryColors assigns palette colors to categories in order of first
// appearance. The catch-all is always grey.
func categoryColors(nodes []flow.Node) map[flow.Category]string {
	colors := make(map[flow.Category]string)
	next := 0
	for _, n := range nodes {
		if _, ok := colors[n.Category]; ok {
			continue
		}
		if n.Category.IsOther {
			colors[n.Category] = otherColor
			continue
		}
		colors[n.Category] = categoryPalette[next%len(categoryPalette)]
		next++
	}
	return colors
}
