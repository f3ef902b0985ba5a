package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refugeeflow/internal/config"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

// queryFlags are shared by every command that reads a dataset.
type queryFlags struct {
	regions  []string
	years    string
	mode     string
	geometry string
	noCache  bool
	refresh  bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&q.regions, "regions", "r", nil, "regions to include (Asia, Europe, Africa, South America, North America, Oceania)")
	f.StringVarP(&q.years, "years", "y", "", "year or range, e.g. 2015 or 2013-2022")
	f.StringVar(&q.mode, "mode", "", "frames of a range: every-year (default), endpoints, single")
	f.StringVar(&q.geometry, "geometry", "", "GeoJSON country boundaries (path or URL)")
	f.BoolVar(&q.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&q.refresh, "refresh", false, "re-render even when a cached artifact exists")
}

// outputFlags are shared by commands that write files.
type outputFlags struct {
	formats string
	output  string
}

func (o *outputFlags) register(cmd *cobra.Command, formats string) {
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): "+formats+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
}

// mapFlags configure map layout and animation.
type mapFlags struct {
	width      float64
	height     float64
	observer   string
	iterations int
	year       int
	noLabels   bool
	scale      float64
	period     time.Duration
	transition time.Duration
}

func (m *mapFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&m.width, "width", 0, "frame width (default 400)")
	f.Float64Var(&m.height, "height", 0, "frame height (default 250)")
	f.StringVar(&m.observer, "observer", "", "country whose outline symbols avoid")
	f.IntVar(&m.iterations, "iterations", 0, "collision solver ticks (default 300)")
	f.IntVar(&m.year, "year", 0, "render a single frame statically instead of animating")
	f.BoolVar(&m.noLabels, "no-labels", false, "hide country labels inside symbols")
	f.Float64Var(&m.scale, "scale", 0, "PNG scale factor (default 2)")
	f.DurationVar(&m.period, "period", 0, "time each frame is shown (default 5s)")
	f.DurationVar(&m.transition, "transition", 0, "transition between frames (default 1s)")
}

// baseOptions starts from the config file and applies every flag the user
// set explicitly. args may name the dataset.
func (c *CLI) baseOptions(cmd *cobra.Command, kind string, args []string, q *queryFlags) (pipeline.Options, error) {
	cfg := c.Config
	opts := pipeline.Options{
		Kind:    kind,
		Source:  cfg.Dataset,
		Regions: cfg.Selection.Regions,
		Flow:    cfg.Flow,
		Logger:  c.Logger,
	}
	if len(args) > 0 {
		opts.Source = args[0]
	}
	if opts.Source == "" {
		return opts, fmt.Errorf("no dataset: pass a path or set dataset in %s", configHint())
	}

	years, mode := cfg.Selection.Years, cfg.Selection.Mode
	fs := cmd.Flags()
	if fs.Changed("regions") {
		opts.Regions = q.regions
	}
	if fs.Changed("years") {
		years = q.years
	}
	if fs.Changed("mode") {
		mode = q.mode
	}
	start, end, err := config.ParseYears(years)
	if err != nil {
		return opts, err
	}
	opts.Start, opts.End = start, end
	if opts.Mode, err = frames.ParseMode(mode); err != nil {
		return opts, err
	}
	opts.Refresh = q.refresh
	return opts, nil
}

// applyMap copies map settings from the config file, then from flags.
func (c *CLI) applyMap(cmd *cobra.Command, opts *pipeline.Options, m *mapFlags) {
	cfg := c.Config.Map
	opts.Width, opts.Height = cfg.Width, cfg.Height
	opts.Observer = cfg.Observer
	opts.Iterations = cfg.Iterations
	opts.Period, opts.Transition = cfg.Period, cfg.Transition

	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = m.width
	}
	if fs.Changed("height") {
		opts.Height = m.height
	}
	if fs.Changed("observer") {
		opts.Observer = m.observer
	}
	if fs.Changed("iterations") {
		opts.Iterations = m.iterations
	}
	if fs.Changed("period") {
		opts.Period = m.period
	}
	if fs.Changed("transition") {
		opts.Transition = m.transition
	}
	opts.Year = m.year
	opts.NoLabels = m.noLabels
	opts.Scale = m.scale
}

// configHint names the config file for error messages.
func configHint() string {
	if p, err := config.DefaultPath(); err == nil {
		return p
	}
	return "the config file"
}
