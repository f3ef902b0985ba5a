package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/refugeeflow/internal/server"
	"github.com/matzehuels/refugeeflow/pkg/observability"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		geometry  string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve maps and charts of a dataset over HTTP",
		Long: `Serve maps, flow diagrams and the overview of one dataset over HTTP.

The dataset is read once at startup. Every request takes its selection from
query parameters, e.g.

  /api/map?regions=Asia,Africa&years=2013-2015&format=svg
  /api/flow?years=2013-2022&viz=nodelink&format=png
  /api/overview?format=pdf

Rendered artifacts go through the configured cache. /metrics exposes
Prometheus metrics unless --no-metrics is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := c.Config.Dataset
			if len(args) > 0 {
				source = args[0]
			}
			if source == "" {
				return fmt.Errorf("no dataset: pass a path or set dataset in %s", configHint())
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), source, addr, geometry, noCache, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr from the config file, or :8080)")
	cmd.Flags().StringVar(&geometry, "geometry", "", "GeoJSON country boundaries (path or URL)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, source, addr, geometry string, noCache, withMetrics bool) error {
	var opts []server.Option
	if withMetrics {
		m := server.NewMetrics()
		observability.SetPipelineHooks(m)
		observability.SetCacheHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(m))
	}
	opts = append(opts,
		server.WithLogger(c.Logger),
		server.WithTimeouts(c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout))

	prog := newProgress(c.Logger)
	ds, err := pipeline.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	prog.done("dataset loaded", "source", source, "records", ds.Len())

	runner, err := c.newRunner(ctx, noCache, geometry)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, ds, opts...)

	printSuccess("Serving %s", source)
	printKeyValue("Address", StyleLink.Render(listenURL(addr)))
	printKeyValue("Records", StyleNumber.Render(humanize.Comma(int64(ds.Len()))))
	if withMetrics {
		printKeyValue("Metrics", StyleLink.Render(listenURL(addr)+"/metrics"))
	}
	printNextStep("Try", "curl '"+listenURL(addr)+"/api/overview?format=svg'")

	return srv.Run(ctx, addr)
}

// listenURL turns a listen address into a URL a browser can open.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
