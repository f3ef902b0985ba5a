// Package cli implements the refugeeflow command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/refugeeflow/internal/config"
	"github.com/matzehuels/refugeeflow/pkg/buildinfo"
	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/httputil"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "refugeeflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Refugeeflow maps and charts refugee arrivals by country of origin",
		Long: `Refugeeflow turns a table of refugee arrivals per country and year into
proportional-symbol maps, flow diagrams between years and a regional overview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/refugeeflow/config.toml)")

	root.AddCommand(c.mapCommand())
	root.AddCommand(c.flowCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. Closed-domain errors surface here,
// before any work starts.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, geometry string) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL

	if geometry == "" {
		geometry = c.Config.Geometry
	}
	if geometry != "" {
		g, err := c.loadGeometry(ctx, geometry)
		if err != nil {
			runner.Close()
			return nil, err
		}
		runner.Geometry = g
		c.Logger.Debug("geometry loaded", "source", geometry, "countries", len(g.Centroids))
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, c.Config.Cache)
	if err != nil {
		if c.Config.Cache.Backend == "" || c.Config.Cache.Backend == cache.BackendFile {
			c.Logger.Warn("artifact cache unavailable, continuing without it", "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", c.Config.Cache.Backend, err)
	}
	return store, nil
}

// loadGeometry reads a GeoJSON file or downloads it through the geometry
// cache when source is a URL.
func (c *CLI) loadGeometry(ctx context.Context, source string) (*geo.Geometry, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		var store *httputil.Cache
		if dir, err := c.cacheDir(); err == nil {
			store, _ = httputil.NewCache(filepath.Join(dir, "geometry"), geo.DefaultGeometryTTL)
		}
		return geo.Fetch(ctx, source, store)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open geometry: %w", err)
	}
	defer f.Close()
	return geo.LoadGeoJSON(f)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
