package sink

import (
	"encoding/json"

	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/overview"
)

// Layout kinds recorded in JSON output.
const (
	KindMap      = "map"
	KindFlow     = "flow"
	KindOverview = "overview"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	background *geo.Background
	source     string
	indent     bool
}

// WithJSONBackground embeds the base-map primitives so clients can draw the
// map without projecting anything.
func WithJSONBackground(bg geo.Background) JSONOption {
	return func(r *jsonRenderer) { r.background = &bg }
}

// WithJSONSource records the input table's content hash.
func WithJSONSource(hash string) JSONOption { return func(r *jsonRenderer) { r.source = hash } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Kind       string          `json:"kind"`
	Source     string          `json:"source,omitempty"`
	Background *geo.Background `json:"background,omitempty"`
	Layout     any             `json:"layout"`
}

// RenderJSON serializes a computed layout: a [frames.Result], a
// [flow.Diagram] or an [overview.Overview].
func RenderJSON(layout any, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Source: r.source, Layout: layout}
	switch layout.(type) {
	case frames.Result, *frames.Result:
		out.Kind = KindMap
		out.Background = r.background
	case flow.Diagram, *flow.Diagram:
		out.Kind = KindFlow
	case overview.Overview, *overview.Overview:
		out.Kind = KindOverview
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot serialize %T", layout)
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
