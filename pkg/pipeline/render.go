package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/render/nodelink"
	"github.com/matzehuels/refugeeflow/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently from the finished layout.
func Render(ctx context.Context, l Layout, datasetHash string, opts Options) (map[string][]byte, error) {
	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(l, datasetHash, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(l Layout, datasetHash, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		jsonOpts := []sink.JSONOption{sink.WithJSONSource(datasetHash)}
		if l.Background != nil {
			jsonOpts = append(jsonOpts, sink.WithJSONBackground(*l.Background))
		}
		return sink.RenderJSON(l.Value(), jsonOpts...)
	}

	switch l.Kind {
	case KindMap:
		return renderMap(l, format, opts)
	case KindFlow:
		return renderFlow(l, format, opts)
	case KindOverview:
		svg, err := sink.RenderOverviewSVG(*l.Overview, opts.Title)
		if err != nil {
			return nil, err
		}
		return convert(svg, format, opts)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown layout kind %q", l.Kind)
}

func renderMap(l Layout, format string, opts Options) ([]byte, error) {
	mapOpts := []sink.MapOption{sink.WithCadence(opts.Period, opts.Transition)}
	if opts.NoLabels {
		mapOpts = append(mapOpts, sink.WithoutLabels())
	}

	frame := -1
	if opts.Year != 0 {
		frame = slices.Index(l.Map.Years(), opts.Year)
		if frame < 0 {
			return nil, errors.New(errors.ErrCodeInvalidYear, "year %d is not a frame of this selection (frames: %v)", opts.Year, l.Map.Years())
		}
	}
	if frame < 0 && format != FormatSVG && len(l.Map.Frames) > 0 {
		frame = 0
	}
	if frame >= 0 {
		mapOpts = append(mapOpts, sink.WithFrame(frame))
	}

	svg, err := sink.RenderMapSVG(*l.Map, *l.Background, mapOpts...)
	if err != nil {
		return nil, err
	}
	return convert(svg, format, opts)
}

func renderFlow(l Layout, format string, opts Options) ([]byte, error) {
	if opts.VizType == VizNodelink || format == FormatDOT {
		dot := nodelink.ToDOT(*l.Flow, nodelink.Options{Detailed: true})
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatSVG:
			return nodelink.RenderSVG(dot)
		case FormatPNG:
			return nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			return nodelink.RenderPDF(dot)
		}
	}
	svg, err := sink.RenderFlowSVG(*l.Flow)
	if err != nil {
		return nil, err
	}
	return convert(svg, format, opts)
}

// convert turns an SVG into the requested raster or document format.
func convert(svg []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return sink.RenderPNG(svg, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
