package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
)

func testData() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "1,000", 2014: "2,000"}},
		{Country: "Iraq", Region: "Asia", Values: map[int]string{2013: "500", 2014: "100"}},
		{Country: "Atlantis", Region: "Asia", Values: map[int]string{2013: "700"}},
		{Country: "Eritrea", Region: "Africa", Values: map[int]string{2013: "900", 2014: "D"}},
	})
}

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(store, nil, logger)
	t.Cleanup(func() { runner.Close() })

	s := New(runner, testData(), opts...)
	return s, s.Handler()
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, h := newTestServer(t)
	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 4, body.Records)
	assert.Equal(t, []int{2013, 2014}, body.Years)
	assert.Equal(t, shortHash(s.datasetHash), body.Dataset)
	assert.NotEmpty(t, body.Build.Version)
}

func TestRegions(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/api/regions")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []regionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 6)
	assert.Equal(t, "Asia", body[0].Name)
	assert.True(t, body[0].Present)
	assert.Equal(t, "#1f78b4", body[0].Color)
	for _, r := range body {
		if r.Name == "Europe" {
			assert.False(t, r.Present)
		}
	}
}

func TestMapJSON(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/api/map?regions=Asia&years=2013-2014")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "Atlantis", rec.Header().Get("X-Missing-Countries"))
	assert.NotEmpty(t, rec.Header().Get("X-Layout-Hash"))
	assert.Contains(t, rec.Body.String(), `"kind":"map"`)

	again := get(t, h, "/api/map?regions=Asia&years=2013-2014")
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.Equal(t, rec.Body.String(), again.Body.String())

	fresh := get(t, h, "/api/map?regions=Asia&years=2013-2014&refresh=true")
	assert.Equal(t, "MISS", fresh.Header().Get("X-Cache"))
}

func TestMapSVG(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/api/map?regions=Asia&start=2013&end=2014&year=2014&format=svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Total: 2,100")
}

func TestETag(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	cached := get(t, h, "/api/overview", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.Bytes())

	stale := get(t, h, "/api/overview", "If-None-Match", `"other"`)
	assert.Equal(t, http.StatusOK, stale.Code)
}

func TestFlowDOT(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/api/flow?regions=Asia,Africa&years=2013-2014&format=dot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/vnd.graphviz", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "digraph"))
}

func TestRenderErrors(t *testing.T) {
	_, h := newTestServer(t)
	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"unknown region", "/api/map?regions=Atlantis", http.StatusBadRequest, "invalid_region"},
		{"bad year", "/api/map?regions=Asia&years=20x3", http.StatusBadRequest, "invalid_year"},
		{"bad int", "/api/flow?top_n=many", http.StatusBadRequest, "invalid_input"},
		{"bad format", "/api/overview?format=dot", http.StatusBadRequest, "invalid_format"},
		{"bad viz", "/api/flow?viz=sankey", http.StatusBadRequest, "invalid_input"},
		{"bad bool", "/api/map?labels=maybe", http.StatusBadRequest, "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, tt.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
			assert.NotEmpty(t, body.Description)
		})
	}
}

func TestWriteErrorHidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeError(rec, errors.New(errors.ErrCodeTimeout, "layout took too long"))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestOptionsFromQuery(t *testing.T) {
	q := url.Values{
		"regions": {"Asia, Europe", "Africa"},
		"years":   {"2013-2015"},
		"mode":    {"endpoints"},
		"labels":  {"false"},
		"top_n":   {"5"},
		"width":   {"800"},
		"format":  {"SVG"},
	}
	opts, err := optionsFromQuery(pipeline.KindFlow, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Asia", "Europe", "Africa"}, opts.Regions)
	assert.Equal(t, 2013, opts.Start)
	assert.Equal(t, 2015, opts.End)
	assert.Equal(t, frames.Mode("endpoints"), opts.Mode)
	assert.True(t, opts.NoLabels)
	assert.Equal(t, 5, opts.Flow.TopN)
	assert.Equal(t, 800.0, opts.Width)
	assert.Equal(t, []string{"svg"}, opts.Formats)

	opts, err = optionsFromQuery(pipeline.KindMap, url.Values{})
	require.NoError(t, err)
	assert.Equal(t, []string{pipeline.FormatJSON}, opts.Formats)
	assert.False(t, opts.NoLabels)

	_, err = optionsFromQuery(pipeline.KindMap, url.Values{"width": {"-3"}})
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	_, h := newTestServer(t, WithMetrics(m))

	require.Equal(t, http.StatusOK, get(t, h, "/api/overview").Code)
	m.OnCacheHit(context.Background(), "artifact")
	m.OnLayoutComplete(context.Background(), "overview", 3*time.Millisecond, nil)

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `refugeeflow_http_requests_total{method="GET",route="/api/overview",status="200"} 1`)
	assert.Contains(t, body, `refugeeflow_cache_events_total{event="hit",type="artifact"} 1`)
	assert.Contains(t, body, `refugeeflow_stage_total{stage="layout",status="ok"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsNotMountedByDefault(t *testing.T) {
	_, h := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/metrics").Code)
}

func TestRunShutsDown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
