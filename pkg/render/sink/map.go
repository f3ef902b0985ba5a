package sink

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/refugeeflow/pkg/anim"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

const (
	sphereFill    = "#9ACBE3"
	timelineColor = "#4CAF50"
	labelScale    = 0.8
)

// MapOption configures [RenderMapSVG].
type MapOption func(*mapRenderer)

type mapRenderer struct {
	frame      int
	period     time.Duration
	transition time.Duration
	labels     bool
}

// WithFrame renders frame i statically instead of animating all frames.
func WithFrame(i int) MapOption { return func(r *mapRenderer) { r.frame = i } }

// WithCadence overrides the animation period and transition.
func WithCadence(period, transition time.Duration) MapOption {
	return func(r *mapRenderer) { r.period, r.transition = period, transition }
}

// WithoutLabels omits country names inside circles.
func WithoutLabels() MapOption { return func(r *mapRenderer) { r.labels = false } }

// RenderMapSVG draws the base map and the frames of res. An empty result
// draws the base map alone. Unknown regions are an error.
func RenderMapSVG(res frames.Result, bg geo.Background, opts ...MapOption) ([]byte, error) {
	r := mapRenderer{
		frame:      -1,
		period:     anim.DefaultPeriod,
		transition: anim.DefaultTransition,
		labels:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := bg.Width, bg.Height
	if w <= 0 || h <= 0 {
		w, h = res.Width, res.Height
	}
	k := w / geo.ReferenceWidth

	var buf bytes.Buffer
	svgOpen(&buf, w, h)
	renderBackground(&buf, bg, res.Zone, k)

	if res.Empty() {
		buf.WriteString("</svg>\n")
		return buf.Bytes(), nil
	}
	colors, err := nodeColors(res.Frames[0].Nodes)
	if err != nil {
		return nil, err
	}

	shown := res.Frames
	if r.frame >= 0 {
		if r.frame >= len(res.Frames) {
			return nil, fmt.Errorf("frame %d out of range (%d frames)", r.frame, len(res.Frames))
		}
		shown = res.Frames[r.frame : r.frame+1]
	}
	c := newCadence(len(shown), r.period, r.transition)

	renderSymbols(&buf, shown, colors, c, r.labels)
	renderTotals(&buf, shown, c, w, h, k)
	if len(res.Frames) > 1 {
		active := 0
		if r.frame >= 0 {
			active = r.frame
		}
		renderTimeline(&buf, res.Years(), active, len(shown) > 1, c, w, k)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderBackground(buf *bytes.Buffer, bg geo.Background, zone *geo.Zone, k float64) {
	if len(bg.Sphere) > 0 {
		fmt.Fprintf(buf, `  <path class="sphere" d="%s" fill="%s"/>`+"\n", pathData([][][2]float64{bg.Sphere}, true), sphereFill)
	}
	if len(bg.Graticule) > 0 {
		fmt.Fprintf(buf, `  <path class="graticule" d="%s" fill="none" stroke="white" stroke-width="%s" stroke-opacity="0.5" stroke-dasharray="2"/>`+"\n",
			pathData(bg.Graticule, false), num(0.8*k))
	}
	if len(bg.Land) > 0 {
		fmt.Fprintf(buf, `  <path class="land" d="%s" fill="white" fill-opacity="0.5"/>`+"\n", pathData(bg.Land, true))
	}
	switch {
	case len(bg.Observer) > 0:
		fmt.Fprintf(buf, `  <path class="observer" d="%s" fill="none" stroke="black" stroke-width="%s"/>`+"\n",
			pathData(bg.Observer, true), num(1.5*k))
	case zone != nil:
		corners := zone.Corners()
		fmt.Fprintf(buf, `  <path class="observer" d="%s" fill="none" stroke="black" stroke-width="%s" stroke-dasharray="3,2"/>`+"\n",
			pathData([][][2]float64{corners[:]}, true), num(k))
	}
}

func nodeColors(nodes []symbol.Node) ([]string, error) {
	colors := make([]string, len(nodes))
	for i, n := range nodes {
		c, err := region.Color(n.Region)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}

// renderSymbols draws one group per country. Frames share node order, so
// node i is the same country in every frame.
func renderSymbols(buf *bytes.Buffer, shown []frames.Frame, colors []string, c cadence, labels bool) {
	first := shown[0]
	animate := len(shown) > 1
	for i, n := range first.Nodes {
		fmt.Fprintf(buf, `  <g class="country-group" transform="translate(%s,%s)">`+"\n", num(n.X), num(n.Y))
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(tooltip(shown, i)))

		dash := ""
		if n.Suppressed {
			dash = ` stroke-dasharray="4,2"`
		}
		fmt.Fprintf(buf, `    <circle r="%s" fill="%s" fill-opacity="0.9" stroke="#fff" stroke-width="0.5"%s>`,
			num(n.Radius), colors[i], dash)
		if animate {
			buf.WriteString(c.animateSmooth("r", collect(shown, i, func(n symbol.Node) string { return num(n.Radius) })))
			dashes := collect(shown, i, func(n symbol.Node) string {
				if n.Suppressed {
					return "4,2"
				}
				return "none"
			})
			if slices.Contains(dashes, "4,2") {
				buf.WriteString(c.animateSteps("stroke-dasharray", dashes))
			}
		}
		buf.WriteString("</circle>\n")

		if labels {
			fmt.Fprintf(buf, `    <text text-anchor="middle" dominant-baseline="middle" fill="white" font-size="%s">%s`,
				num(n.Radius*labelScale), escapeXML(n.Country))
			if animate {
				buf.WriteString(c.animateSmooth("font-size", collect(shown, i, func(n symbol.Node) string { return num(n.Radius * labelScale) })))
			}
			buf.WriteString("</text>\n")
		}
		if animate {
			buf.WriteString("    ")
			buf.WriteString(c.animateTranslate(collect(shown, i, func(n symbol.Node) string { return num(n.X) + "," + num(n.Y) })))
			buf.WriteString("\n")
		}
		buf.WriteString("  </g>\n")
	}
}

func collect(shown []frames.Frame, i int, f func(symbol.Node) string) []string {
	out := make([]string, len(shown))
	for j, fr := range shown {
		out[j] = f(fr.Nodes[i])
	}
	return out
}

func tooltip(shown []frames.Frame, i int) string {
	lines := []string{shown[0].Nodes[i].Country}
	for _, fr := range shown {
		n := fr.Nodes[i]
		v := "Unknown"
		if !n.Suppressed {
			v = formatCount(n.Magnitude)
		}
		if len(shown) == 1 {
			lines = append(lines, v)
		} else {
			lines = append(lines, fmt.Sprintf("%d: %s", fr.Year, v))
		}
	}
	return strings.Join(lines, "\n")
}

func formatCount(v float64) string { return humanize.Comma(int64(math.Round(v))) }

func renderTotals(buf *bytes.Buffer, shown []frames.Frame, c cadence, w, h, k float64) {
	x, y := w/2, h-10*k
	for i, fr := range shown {
		fmt.Fprintf(buf, `  <text class="total-label" x="%s" y="%s" text-anchor="middle" font-size="%s" fill="#333"`,
			num(x), num(y), num(8*k))
		if len(shown) > 1 && i > 0 {
			buf.WriteString(` opacity="0"`)
		}
		fmt.Fprintf(buf, ">Total: %s", formatCount(fr.Total))
		if len(shown) > 1 {
			buf.WriteString(c.animateDiscrete("opacity", i, "1", "0"))
		}
		buf.WriteString("</text>\n")
	}
}

// renderTimeline draws one dot per year on a point scale with half-step
// padding. When animating, the highlight follows the frame cadence.
func renderTimeline(buf *bytes.Buffer, years []int, active int, animate bool, c cadence, w, k float64) {
	x0, x1 := 40*k, w-140*k
	step := (x1 - x0) / float64(len(years))
	pos := func(i int) float64 { return x0 + step*(float64(i)+0.5) }

	buf.WriteString(`  <g class="timeline">` + "\n")
	fmt.Fprintf(buf, `    <line x1="%s" x2="%s" y1="%s" y2="%s" stroke="#ddd" stroke-width="%s"/>`+"\n",
		num(pos(0)), num(pos(len(years)-1)), num(4*k), num(4*k), num(4*k))
	for i, y := range years {
		fill, labelFill, weight := "#fff", "#999", "normal"
		if i == active {
			fill, labelFill, weight = timelineColor, "black", "bold"
		}
		fmt.Fprintf(buf, `    <circle class="year-dot" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s">`,
			num(pos(i)), num(4*k), num(3*k), fill, timelineColor, num(2*k))
		if animate {
			buf.WriteString(c.animateDiscrete("fill", i, timelineColor, "#fff"))
		}
		buf.WriteString("</circle>\n")
		fmt.Fprintf(buf, `    <text class="year-label" x="%s" y="%s" text-anchor="middle" font-size="%s" fill="%s" font-weight="%s">%d`,
			num(pos(i)), num(15*k), num(5*k), labelFill, weight, y)
		if animate {
			buf.WriteString(c.animateDiscrete("fill", i, "black", "#999"))
			buf.WriteString(c.animateDiscrete("font-weight", i, "bold", "normal"))
		}
		buf.WriteString("</text>\n")
	}
	buf.WriteString("  </g>\n")
}
