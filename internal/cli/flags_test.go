package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refugeeflow/internal/config"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

func testCLI(cfg config.Config) *CLI {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config = cfg
	return c
}

func parsed(t *testing.T, args ...string) (*cobra.Command, *queryFlags, *mapFlags) {
	t.Helper()
	var (
		q queryFlags
		m mapFlags
	)
	cmd := &cobra.Command{Use: "test"}
	q.register(cmd)
	m.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, &q, &m
}

func TestBaseOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = "configured.csv"
	cfg.Selection = config.Selection{Regions: []string{"Asia"}, Years: "2013-2015", Mode: "endpoints"}
	c := testCLI(cfg)

	cmd, q, _ := parsed(t)
	opts, err := c.baseOptions(cmd, pipeline.KindMap, nil, q)
	if err != nil {
		t.Fatalf("baseOptions: %v", err)
	}
	if opts.Source != "configured.csv" {
		t.Errorf("Source = %q", opts.Source)
	}
	if len(opts.Regions) != 1 || opts.Regions[0] != "Asia" {
		t.Errorf("Regions = %v", opts.Regions)
	}
	if opts.Start != 2013 || opts.End != 2015 || opts.Mode != frames.ModeEndpoints {
		t.Errorf("selection = %d-%d %s", opts.Start, opts.End, opts.Mode)
	}
}

func TestBaseOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = "configured.csv"
	cfg.Selection = config.Selection{Regions: []string{"Asia"}, Years: "2013-2015", Mode: "endpoints"}
	c := testCLI(cfg)

	cmd, q, _ := parsed(t, "-r", "Europe,Africa", "-y", "2016", "--mode", "single", "--refresh")
	opts, err := c.baseOptions(cmd, pipeline.KindFlow, []string{"given.json"}, q)
	if err != nil {
		t.Fatalf("baseOptions: %v", err)
	}
	if opts.Source != "given.json" {
		t.Errorf("argument should win over config: Source = %q", opts.Source)
	}
	if len(opts.Regions) != 2 || opts.Regions[0] != "Europe" {
		t.Errorf("Regions = %v", opts.Regions)
	}
	if opts.Start != 2016 || opts.End != 0 || opts.Mode != frames.ModeSingle || !opts.Refresh {
		t.Errorf("opts = %+v", opts)
	}
}

func TestBaseOptionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		dataset []string
		flags   []string
	}{
		{"no dataset", nil, nil},
		{"bad years flag", []string{"data.csv"}, []string{"-y", "20-13"}},
		{"bad mode flag", []string{"data.csv"}, []string{"--mode", "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(config.Default())
			cmd, q, _ := parsed(t, tt.flags...)
			if _, err := c.baseOptions(cmd, pipeline.KindMap, tt.dataset, q); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApplyMap(t *testing.T) {
	cfg := config.Default()
	cfg.Map = config.Map{Width: 800, Height: 500, Observer: "Canada", Iterations: 50, Period: 3 * time.Second}
	c := testCLI(cfg)

	cmd, _, m := parsed(t, "--height", "300", "--transition", "500ms", "--year", "2014", "--no-labels")
	var opts pipeline.Options
	c.applyMap(cmd, &opts, m)

	if opts.Width != 800 || opts.Height != 300 {
		t.Errorf("size = %vx%v, want 800x300", opts.Width, opts.Height)
	}
	if opts.Observer != "Canada" || opts.Iterations != 50 {
		t.Errorf("observer %q, iterations %d", opts.Observer, opts.Iterations)
	}
	if opts.Period != 3*time.Second || opts.Transition != 500*time.Millisecond {
		t.Errorf("cadence = %v/%v", opts.Period, opts.Transition)
	}
	if opts.Year != 2014 || !opts.NoLabels {
		t.Errorf("year %d, no labels %v", opts.Year, opts.NoLabels)
	}
}
