package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

const sample = `
dataset = "arrivals.csv"

[selection]
regions = ["Asia", "Europe"]
years   = "2013-2015"
mode    = "endpoints"

[map]
width  = 800
height = 500
period = "3s"

[flow]
top_n = 5

[cache]
backend = "redis"
url     = "redis://localhost:6379/0"
ttl     = "12h"

[server]
addr = ":9090"
`

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Dataset != "arrivals.csv" {
		t.Errorf("Dataset = %q", cfg.Dataset)
	}
	if len(cfg.Selection.Regions) != 2 || cfg.Selection.Regions[1] != "Europe" {
		t.Errorf("Regions = %v", cfg.Selection.Regions)
	}
	if cfg.Map.Width != 800 || cfg.Map.Period != 3*time.Second {
		t.Errorf("Map = %+v", cfg.Map)
	}
	if cfg.Flow.TopN != 5 {
		t.Errorf("Flow.TopN = %d, want 5", cfg.Flow.TopN)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != 12*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if len(cfg.Selection.Regions) != 0 {
		t.Errorf("Regions should default to empty, got %v", cfg.Selection.Regions)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"unknown region", "[selection]\nregions = [\"Atlantis\"]", errors.ErrCodeInvalidRegion},
		{"bad years", "[selection]\nyears = \"twenty\"", errors.ErrCodeInvalidYear},
		{"reversed years", "[selection]\nyears = \"2015-2013\"", errors.ErrCodeInvalidYear},
		{"bad mode", "[selection]\nmode = \"sometimes\"", errors.ErrCodeInvalidConfig},
		{"negative width", "[map]\nwidth = -1", errors.ErrCodeInvalidConfig},
		{"unknown backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis without url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"unknown key", "[map]\ncolour = \"red\"", errors.ErrCodeInvalidConfig},
		{"syntax", "[map\nwidth = 1", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		wantErr    bool
	}{
		{"", 0, 0, false},
		{"2015", 2015, 0, false},
		{"2013-2022", 2013, 2022, false},
		{" 2013 - 2015 ", 2013, 2015, false},
		{"1800", 0, 0, true},
		{"2015-", 0, 0, true},
		{"abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := ParseYears(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseYears(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if start != tt.start || end != tt.end {
				t.Errorf("ParseYears(%q) = (%d, %d), want (%d, %d)", tt.in, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Selection.Years != "2013-2015" {
		t.Errorf("Years = %q", cfg.Selection.Years)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultLocationMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "refugeeflow", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
