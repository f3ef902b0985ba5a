// Package config reads the optional refugeeflow TOML file.
//
// A file looks like:
//
//	dataset  = "data/arrivals.csv"
//	geometry = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"
//
//	[selection]
//	regions = ["Asia", "Europe"]
//	years   = "2013-2022"
//	mode    = "every-year"
//
//	[map]
//	width  = 800
//	height = 500
//
//	[flow]
//	top_n = 10
//
//	[cache]
//	backend = "redis"
//	url     = "redis://localhost:6379/0"
//	ttl     = "12h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override every value read here. Region names are
// checked against the closed region domain when the file is loaded, so a
// typo fails at startup rather than producing an empty map later.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

const (
	appName  = "refugeeflow"
	fileName = "config.toml"

	// DefaultAddr is the serve listen address.
	DefaultAddr = ":8080"
)

// Config is the decoded file. Zero values mean "use the built-in default".
type Config struct {
	// Dataset is the CSV or JSON table path.
	Dataset string `toml:"dataset"`
	// Geometry is a GeoJSON path or URL. Empty uses built-in centroids.
	Geometry string `toml:"geometry"`

	Selection Selection    `toml:"selection"`
	Map       Map          `toml:"map"`
	Flow      flow.Options `toml:"flow"`
	Cache     cache.Config `toml:"cache"`
	Server    Server       `toml:"server"`
}

// Selection is the default query.
type Selection struct {
	Regions []string `toml:"regions"`
	// Years is "2015" or "2013-2022".
	Years string `toml:"years"`
	Mode  string `toml:"mode"`
}

// Map holds map layout and animation settings.
type Map struct {
	Width      float64       `toml:"width"`
	Height     float64       `toml:"height"`
	Observer   string        `toml:"observer"`
	Iterations int           `toml:"iterations"`
	Period     time.Duration `toml:"period"`
	Transition time.Duration `toml:"transition"`
}

// Server configures `refugeeflow serve`.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Server: Server{Addr: DefaultAddr}}
}

// DefaultPath returns $XDG_CONFIG_HOME/refugeeflow/config.toml, falling back
// to ~/.config/refugeeflow/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path. An empty path reads the default location, where a
// missing file is not an error. A missing explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from r, applies defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks closed-domain values. Region errors keep their
// INVALID_REGION code; everything else is INVALID_CONFIG.
func (c Config) Validate() error {
	if err := region.Validate(c.Selection.Regions); err != nil {
		return err
	}
	if _, _, err := ParseYears(c.Selection.Years); err != nil {
		return err
	}
	if _, err := frames.ParseMode(c.Selection.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "selection.mode")
	}
	if c.Map.Width < 0 || c.Map.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "map size must not be negative")
	}
	if c.Map.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "map.iterations must not be negative")
	}
	if c.Map.Period < 0 || c.Map.Transition < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "map animation durations must not be negative")
	}
	if c.Flow.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "flow.top_n must not be negative")
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: file, redis, mongo, none)", c.Cache.Backend)
	}
	if (c.Cache.Backend == cache.BackendRedis || c.Cache.Backend == cache.BackendMongo) && c.Cache.URL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %s needs a url", c.Cache.Backend)
	}
	return nil
}

// ParseYears reads "", "2015" or "2013-2022". A single year returns end 0.
func ParseYears(s string) (start, end int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	first, last, isRange := strings.Cut(s, "-")
	start, err = parseYear(first)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		if err := errors.ValidateYear(start); err != nil {
			return 0, 0, err
		}
		return start, 0, nil
	}
	end, err = parseYear(last)
	if err != nil {
		return 0, 0, err
	}
	if err := errors.ValidateYearRange(start, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidYear, "invalid year %q", s)
	}
	return y, nil
}
