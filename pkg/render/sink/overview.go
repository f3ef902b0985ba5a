package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/refugeeflow/pkg/layout/overview"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

const (
	overviewWidth   = 700.0
	overviewHeight  = 400.0
	overviewTop     = 60.0
	overviewRight   = 150.0
	overviewBottom  = 40.0
	overviewLeft    = 60.0
	overviewPadding = 0.1
	overviewTicks   = 5
)

// RenderOverviewSVG draws one stacked bar per year with a value axis and a
// region legend.
func RenderOverviewSVG(o overview.Overview, title string) ([]byte, error) {
	var buf bytes.Buffer
	svgOpen(&buf, overviewWidth, overviewHeight)
	if title != "" {
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" text-anchor="middle" font-size="16" font-weight="bold">%s</text>`+"\n",
			num(overviewWidth/2), num(overviewTop/2), escapeXML(title))
	}
	if o.Empty() {
		buf.WriteString("</svg>\n")
		return buf.Bytes(), nil
	}

	iw := overviewWidth - overviewLeft - overviewRight
	ih := overviewHeight - overviewTop - overviewBottom
	step := iw / (float64(len(o.Bars)) + overviewPadding)
	band := step * (1 - overviewPadding)
	y := func(v float64) float64 {
		if o.Max <= 0 {
			return ih
		}
		return ih - v/o.Max*ih
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(overviewLeft), num(overviewTop))
	for i, bar := range o.Bars {
		x := step*overviewPadding + float64(i)*step
		fmt.Fprintf(&buf, `    <g class="bar" data-year="%d">`+"\n", bar.Year)
		for _, seg := range bar.Segments {
			if seg.Value == 0 {
				continue
			}
			color, err := region.Color(seg.Region)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&buf, `      <rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s</title></rect>`+"\n",
				num(x), num(y(seg.Y1)), num(band), num(y(seg.Y0)-y(seg.Y1)), color,
				escapeXML(fmt.Sprintf("%s %d: %s", seg.Region, bar.Year, formatCount(seg.Value))))
		}
		fmt.Fprintf(&buf, `      <text x="%s" y="%s" text-anchor="middle" font-size="10">%d</text>`+"\n",
			num(x+band/2), num(ih+16), bar.Year)
		buf.WriteString("    </g>\n")
	}

	buf.WriteString(`    <g class="axis">` + "\n")
	fmt.Fprintf(&buf, `      <line x1="0" y1="0" x2="0" y2="%s" stroke="#333"/>`+"\n", num(ih))
	for _, t := range overview.Ticks(o.Max, overviewTicks) {
		fmt.Fprintf(&buf, `      <line x1="-4" y1="%s" x2="0" y2="%s" stroke="#333"/>`+"\n", num(y(t)), num(y(t)))
		fmt.Fprintf(&buf, `      <text x="-8" y="%s" text-anchor="end" dominant-baseline="middle" font-size="10">%s</text>`+"\n",
			num(y(t)), formatCount(t))
	}
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="legend">` + "\n")
	for i, r := range o.Regions {
		color, err := region.Color(r)
		if err != nil {
			return nil, err
		}
		ly := float64(i) * 20
		fmt.Fprintf(&buf, `      <rect x="%s" y="%s" width="12" height="12" fill="%s"/>`+"\n", num(iw+20), num(ly), color)
		fmt.Fprintf(&buf, `      <text x="%s" y="%s" dominant-baseline="middle" font-size="11">%s</text>`+"\n",
			num(iw+38), num(ly+6), escapeXML(r))
	}
	buf.WriteString("    </g>\n  </g>\n</svg>\n")
	return buf.Bytes(), nil
}
