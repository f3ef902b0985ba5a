// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a CSV or JSON table (skipped when a dataset is supplied)
//  2. Layout: compute map frames, a flow diagram or the region overview
//  3. Render: produce SVG, PNG, PDF, JSON or DOT output
//
// Layouts are always recomputed from the table; only rendered artifacts are
// cached, keyed by a hash of the layout they came from.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    pipeline.KindMap,
//	    Source:  "arrivals.csv",
//	    Regions: []string{"Asia"},
//	    Start:   2013,
//	    End:     2015,
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/refugeeflow/pkg/anim"
	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
	"github.com/matzehuels/refugeeflow/pkg/region"
	"github.com/matzehuels/refugeeflow/pkg/render"
)

// Layout kinds.
const (
	KindMap      = "map"
	KindFlow     = "flow"
	KindOverview = "overview"
)

// Flow visualization types.
const (
	VizRibbon   = "ribbon"
	VizNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// validFormats lists the formats each kind can produce.
var validFormats = map[string][]string{
	KindMap:      {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	KindFlow:     {FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT},
	KindOverview: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
}

// DefaultTitle heads the overview chart.
const DefaultTitle = "Refugee arrivals by region"

// Options configures one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind string `json:"kind"`

	// Source is the dataset path. Ignored when Dataset is set.
	Source string `json:"source,omitempty"`

	// Selection
	Regions []string    `json:"regions,omitempty"`
	Start   int         `json:"start,omitempty"`
	End     int         `json:"end,omitempty"`
	Mode    frames.Mode `json:"mode,omitempty"`

	// Map layout
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Observer   string  `json:"observer,omitempty"`
	Iterations int     `json:"iterations,omitempty"`

	// Flow layout
	Flow    flow.Options `json:"flow,omitempty"`
	VizType string       `json:"viz_type,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	// Year renders that map frame statically. Zero animates every frame.
	// PNG and PDF are always static and fall back to the first frame.
	Year       int           `json:"year,omitempty"`
	NoLabels   bool          `json:"no_labels,omitempty"`
	Scale      float64       `json:"scale,omitempty"`
	Title      string        `json:"title,omitempty"`
	Period     time.Duration `json:"period,omitempty"`
	Transition time.Duration `json:"transition,omitempty"`
	Refresh    bool          `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Dataset *dataset.Dataset `json:"-"`
	Logger  *log.Logger      `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the input table.
	DatasetHash string
	Layout      Layout
	// LayoutHash keys the artifact cache.
	LayoutHash string
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether every artifact came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// ValidateKind checks that kind names a layout.
func ValidateKind(kind string) error {
	if _, ok := validFormats[kind]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: map, flow, overview)", kind)
	}
	return nil
}

// ValidateFormat checks that kind can produce format.
func ValidateFormat(kind, format string) error {
	if !slices.Contains(validFormats[kind], format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid %s format: %q (must be one of: %s)",
			kind, format, strings.Join(validFormats[kind], ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(kind string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks a flow visualization type.
func ValidateVizType(vizType string) error {
	if vizType != VizRibbon && vizType != VizNodelink {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: ribbon, nodelink)", vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills defaults. Regions
// outside the closed region domain fail here rather than at render time.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Dataset == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or dataset is required")
	}
	regions, err := region.Normalize(o.Regions)
	if err != nil {
		return err
	}
	o.Regions = regions
	for _, y := range []int{o.Start, o.End, o.Year} {
		if y == 0 {
			continue
		}
		if err := errors.ValidateYear(y); err != nil {
			return err
		}
	}
	if o.Mode, err = frames.ParseMode(string(o.Mode)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "mode")
	}

	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if o.Kind == KindFlow {
		if err := ValidateVizType(o.VizType); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Kind, o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = geo.ReferenceWidth, geo.ReferenceHeight
	}
	if o.Observer == "" {
		o.Observer = geo.DefaultObserver
	}
	if o.Iterations <= 0 {
		o.Iterations = symbol.DefaultIterations
	}
	if o.VizType == "" {
		o.VizType = VizRibbon
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = render.DefaultScale
	}
	if o.Period <= 0 {
		o.Period = anim.DefaultPeriod
	}
	if o.Transition <= 0 {
		o.Transition = anim.DefaultTransition
	}
	if o.Kind == KindOverview && o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Selection returns the frame selection for map layouts.
func (o *Options) Selection() frames.Selection {
	return frames.Selection{Regions: o.Regions, Start: o.Start, End: o.End, Mode: o.Mode}
}

// Years returns the flow columns: the selection's years with the mode
// applied.
func (o *Options) Years() []int { return o.Selection().Years() }

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Kind:   o.Kind,
		Format: format,
		Frame:  o.Year,
		Labels: !o.NoLabels,
		Title:  o.Title,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.Kind == KindFlow {
		k.Kind = fmt.Sprintf("%s/%s", o.Kind, o.VizType)
	}
	if o.Kind == KindMap && format == FormatSVG && o.Year == 0 {
		k.Cadence = fmt.Sprintf("%s/%s", o.Period, o.Transition)
	}
	return k
}
