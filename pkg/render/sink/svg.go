package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const fontFamily = "sans-serif"

// categoryPalette is d3's schemeCategory10.
var categoryPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const otherColor = "#bbbbbb"

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func svgOpen(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s">`+"\n",
		num(w), num(h), num(w), num(h), fontFamily)
}

// polyline writes points as path data, closing the path when closed is set.
func polyline(buf *bytes.Buffer, pts [][2]float64, closed bool) {
	for i, p := range pts {
		if i == 0 {
			buf.WriteByte('M')
		} else {
			buf.WriteByte('L')
		}
		buf.WriteString(num(p[0]))
		buf.WriteByte(',')
		buf.WriteString(num(p[1]))
	}
	if closed && len(pts) > 0 {
		buf.WriteByte('Z')
	}
}

func pathData(rings [][][2]float64, closed bool) string {
	var buf bytes.Buffer
	for _, r := range rings {
		polyline(&buf, r, closed)
	}
	return buf.String()
}

// keyTimes joins fractions for SMIL attributes.
func keyTimes(ts []float64) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = strconv.FormatFloat(t, 'f', 4, 64)
	}
	return strings.Join(parts, ";")
}

func joinValues(vs []string) string { return strings.Join(vs, ";") }
