package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

// knownExts are stripped from --output when deriving a base path.
var knownExts = map[string]bool{
	pipeline.FormatSVG:  true,
	pipeline.FormatPNG:  true,
	pipeline.FormatPDF:  true,
	pipeline.FormatJSON: true,
	pipeline.FormatDOT:  true,
}

// mapCommand creates the map command.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		q   queryFlags
		out outputFlags
		m   mapFlags
	)

	cmd := &cobra.Command{
		Use:   "map [dataset]",
		Short: "Render a proportional-symbol map of arrivals by origin",
		Long: `Render a proportional-symbol map of arrivals by country of origin.

Each selected country becomes a circle sized by its arrivals, pulled apart so
symbols never overlap and pushed away from the observer's own outline. A year
range produces one frame per year; SVG output animates through them, PNG and
PDF show the first frame (or --year).

Suppressed counts ("D" in the table) are drawn dashed at a placeholder size
and left out of the total.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions(cmd, pipeline.KindMap, args, &q)
			if err != nil {
				return err
			}
			c.applyMap(cmd, &opts, &m)
			opts.Formats = parseFormats(out.formats)
			return c.runRender(cmd.Context(), opts, &q, out.output)
		},
	}

	q.register(cmd)
	out.register(cmd, "svg, png, pdf, json")
	m.register(cmd)
	return cmd
}

// flowCommand creates the flow command.
func (c *CLI) flowCommand() *cobra.Command {
	var (
		q       queryFlags
		out     outputFlags
		vizType string
		topN    int
	)

	cmd := &cobra.Command{
		Use:   "flow [dataset]",
		Short: "Render a flow diagram of the top origins across years",
		Long: `Render a flow diagram of the top origin countries across years.

Every year becomes a column of the ten largest origins plus an "Other" bucket;
ribbons connect a country's category in one year to its category in the next.
The nodelink view renders the same diagram through Graphviz; dot writes the
Graphviz source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions(cmd, pipeline.KindFlow, args, &q)
			if err != nil {
				return err
			}
			opts.VizType = vizType
			if cmd.Flags().Changed("top-n") {
				opts.Flow.TopN = topN
			}
			opts.Formats = parseFormats(out.formats)
			return c.runRender(cmd.Context(), opts, &q, out.output)
		},
	}

	q.register(cmd)
	out.register(cmd, "svg, png, pdf, json, dot")
	cmd.Flags().StringVar(&vizType, "viz", pipeline.VizRibbon, "diagram style: ribbon, nodelink")
	cmd.Flags().IntVar(&topN, "top-n", 0, "named categories per column (default 10)")
	return cmd
}

// overviewCommand creates the overview command.
func (c *CLI) overviewCommand() *cobra.Command {
	var (
		q     queryFlags
		out   outputFlags
		title string
	)

	cmd := &cobra.Command{
		Use:   "overview [dataset]",
		Short: "Render stacked regional totals for every year in the dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions(cmd, pipeline.KindOverview, args, &q)
			if err != nil {
				return err
			}
			opts.Title = title
			opts.Formats = parseFormats(out.formats)
			return c.runRender(cmd.Context(), opts, &q, out.output)
		},
	}

	q.register(cmd)
	out.register(cmd, "svg, png, pdf, json")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, q *queryFlags, output string) error {
	if err := pipeline.ValidateFormats(opts.Kind, opts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, q.noCache, q.geometry)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Kind))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering %s failed", opts.Kind))
		return fmt.Errorf("render %s: %w", opts.Kind, err)
	}
	spinner.Stop()

	if missing := result.Layout.Missing(); len(missing) > 0 {
		printWarning("%d countries have no map position and were skipped", len(missing))
		printDetail("%s", strings.Join(missing, ", "))
	}
	if result.Layout.Empty() {
		printInfo("Nothing matched the selection; rendered the empty %s", opts.Kind)
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, opts.Formats, outputBase(output, opts.Source, opts.Kind))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Kind)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}

// outputBase derives the path files are written to, without extension.
// An empty output names files after the dataset and kind, next to the
// dataset. A known format extension on output is stripped.
func outputBase(output, source, kind string) string {
	if output == "" {
		return strings.TrimSuffix(source, filepath.Ext(source)) + "_" + kind
	}
	ext := filepath.Ext(output)
	if knownExts[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes base.<format> for every format concurrently and
// returns the paths in format order.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, len(formats))
	g, _ := errgroup.WithContext(ctx)
	for i, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, fmt.Errorf("no %s output was produced", format)
		}
		path := base + "." + format
		paths[i] = path
		g.Go(func() error {
			return writeFile(path, data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
