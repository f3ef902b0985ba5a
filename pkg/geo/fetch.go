package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/refugeeflow/pkg/buildinfo"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/httputil"
	"github.com/matzehuels/refugeeflow/pkg/observability"
)

// DefaultGeometryTTL is how long downloaded boundary files stay fresh.
const DefaultGeometryTTL = 7 * 24 * time.Hour

// maxGeometryBytes bounds a boundary download.
const maxGeometryBytes = 64 << 20

// Fetcher downloads boundary GeoJSON with retries and an optional file cache.
type Fetcher struct {
	Client *http.Client
	Cache  *httputil.Cache

	// Attempts and Delay control retries. Zero values mean 3 attempts
	// starting at one second.
	Attempts int
	Delay    time.Duration
}

// Fetch downloads and parses a GeoJSON FeatureCollection from rawURL using
// a default HTTP client.
func Fetch(ctx context.Context, rawURL string, cache *httputil.Cache) (*Geometry, error) {
	f := Fetcher{Client: &http.Client{Timeout: 30 * time.Second}, Cache: cache}
	return f.Fetch(ctx, rawURL)
}

// Fetch downloads rawURL, consulting the cache first. Transient failures
// (network errors, 5xx) are retried.
func (f Fetcher) Fetch(ctx context.Context, rawURL string) (*Geometry, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if f.Cache != nil {
		var cached []byte
		if ok, err := f.Cache.Get(rawURL, &cached); err == nil && ok {
			if g, err := ParseGeoJSON(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "geometry")
				return g, nil
			}
		}
		// Unreadable entries are overwritten by the download below.
		observability.Cache().OnCacheMiss(ctx, "geometry")
	}

	var body []byte
	attempts, delay := f.Attempts, f.Delay
	if attempts <= 0 {
		attempts = 3
	}
	if delay <= 0 {
		delay = time.Second
	}
	err := httputil.Retry(ctx, attempts, delay, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch geometry %s", rawURL)
	}

	g, err := ParseGeoJSON(body)
	if err != nil {
		return nil, err
	}
	if f.Cache != nil {
		if err := f.Cache.Set(rawURL, body); err == nil {
			observability.Cache().OnCacheSet(ctx, "geometry", len(body))
		}
	}
	return g, nil
}

func (f Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	u, _ := url.Parse(rawURL)
	host, path := "", ""
	if u != nil {
		host, path = u.Host, u.Path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "geometry not found at %s", rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxGeometryBytes))
}
