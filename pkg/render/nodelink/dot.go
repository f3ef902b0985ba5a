package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/render"
)

const (
	minPenWidth = 1.0
	maxPenWidth = 12.0
)

// Options configures node-link rendering.
type Options struct {
	// Detailed adds values to node and edge labels.
	Detailed bool
}

// ToDOT converts a flow diagram to Graphviz DOT. Columns run left to right
// and the catch-all category is drawn dashed and grey. An empty diagram
// yields an empty graph.
func ToDOT(d flow.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.15;\n")

	for _, col := range d.Columns() {
		fmt.Fprintf(&buf, "\n  subgraph \"year_%d\" {\n    rank=same;\n", col.Year)
		for _, n := range col.Nodes {
			fmt.Fprintf(&buf, "    %q [%s];\n", n.Key().String(), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	var maxValue float64
	for _, l := range d.Links {
		maxValue = max(maxValue, l.Value)
	}
	if len(d.Links) > 0 {
		buf.WriteString("\n")
	}
	for _, l := range d.Links {
		attrs := []string{fmt.Sprintf("penwidth=%.2f", penWidth(l.Value, maxValue))}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", humanize.Commaf(l.Value)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source.String(), l.Target.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n flow.Node, detailed bool) string {
	label := n.Category.Label
	if n.Category.IsOther && len(n.Countries) > 0 {
		label = fmt.Sprintf("%s (%d)", label, len(n.Countries))
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\n%d: %s", label, n.Year, humanize.Commaf(n.Value))
}

func fmtAttrs(n flow.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.Category.IsOther {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func penWidth(v, maxValue float64) float64 {
	if maxValue <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPenWidth-minPenWidth)*v/maxValue
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// pixel viewBox so the output scales like the other charts.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
