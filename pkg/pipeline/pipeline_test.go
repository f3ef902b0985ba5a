package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/observability"
)

func testData() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "1,000", 2014: "2,000"}},
		{Country: "Iraq", Region: "Asia", Values: map[int]string{2013: "500", 2014: "100"}},
		{Country: "Atlantis", Region: "Asia", Values: map[int]string{2013: "700"}},
		{Country: "Eritrea", Region: "Africa", Values: map[int]string{2013: "900", 2014: "900"}},
	})
}

// memCache counts hits for cache assertions.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		kind, format string
		wantErr      bool
	}{
		{KindMap, "svg", false},
		{KindMap, "png", false},
		{KindMap, "pdf", false},
		{KindMap, "json", false},
		{KindMap, "dot", true},
		{KindFlow, "dot", false},
		{KindOverview, "json", false},
		{KindMap, "SVG", true},
		{KindMap, "", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.kind, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.kind, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateKindAndVizType(t *testing.T) {
	for _, k := range []string{KindMap, KindFlow, KindOverview} {
		if err := ValidateKind(k); err != nil {
			t.Errorf("ValidateKind(%q) = %v", k, err)
		}
	}
	if err := ValidateKind("tower"); err == nil {
		t.Error("unknown kind should fail")
	}
	if err := ValidateVizType(VizNodelink); err != nil {
		t.Errorf("nodelink should pass: %v", err)
	}
	if err := ValidateVizType("handdrawn"); err == nil {
		t.Error("unknown viz type should fail")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"missing kind", Options{Source: "x.csv"}, errors.ErrCodeInvalidInput},
		{"missing source", Options{Kind: KindMap}, errors.ErrCodeInvalidInput},
		{"bad region", Options{Kind: KindMap, Source: "x.csv", Regions: []string{"Atlantis"}}, errors.ErrCodeInvalidRegion},
		{"bad year", Options{Kind: KindMap, Source: "x.csv", Start: 12}, errors.ErrCodeInvalidYear},
		{"bad mode", Options{Kind: KindMap, Source: "x.csv", Mode: "sometimes"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Kind: KindOverview, Source: "x.csv", Formats: []string{"dot"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Kind: KindOverview, Dataset: testData(), Regions: []string{"Africa", "Asia"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != geo.ReferenceWidth || opts.Height != geo.ReferenceHeight {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
	if opts.Observer != geo.DefaultObserver {
		t.Errorf("Observer = %q", opts.Observer)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Title != DefaultTitle {
		t.Errorf("Title = %q", opts.Title)
	}
	if opts.Regions[0] != "Asia" {
		t.Errorf("regions should follow display order, got %v", opts.Regions)
	}

	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.VizType != before.VizType || opts.Scale != before.Scale {
		t.Error("second call changed options")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Kind: KindMap, Period: time.Second, Transition: time.Millisecond}
	if opts.ArtifactKeyOpts(FormatSVG) == opts.ArtifactKeyOpts(FormatPNG) {
		t.Error("formats must not share keys")
	}
	if opts.ArtifactKeyOpts(FormatSVG).Cadence == "" {
		t.Error("animated SVG keys should include the cadence")
	}
	opts.Year = 2014
	if opts.ArtifactKeyOpts(FormatSVG).Cadence != "" {
		t.Error("static frames do not depend on the cadence")
	}
}

func TestExecuteMap(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	opts := Options{
		Kind:    KindMap,
		Dataset: testData(),
		Regions: []string{"Asia"},
		Start:   2013,
		End:     2014,
		Formats: []string{FormatSVG, FormatJSON},
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run cannot hit the cache")
	}
	if got := len(res.Layout.Map.Frames); got != 2 {
		t.Errorf("frames = %d, want 2", got)
	}
	if missing := res.Layout.Missing(); len(missing) != 1 || missing[0] != "Atlantis" {
		t.Errorf("Missing = %v", missing)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<animateTransform") {
		t.Error("range selection should animate")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"kind":"map"`) {
		t.Error("json artifact missing kind")
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("identical selection should hit the artifact cache")
	}
	if again.LayoutHash != res.LayoutHash {
		t.Error("layout hash should be stable")
	}

	opts.Refresh = true
	fresh, _ := r.Execute(ctx, opts)
	if fresh.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteStaticYear(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Kind: KindMap, Dataset: testData(), Regions: []string{"Asia"},
		Start: 2013, End: 2014, Year: 2014,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	svg := string(res.Artifacts[FormatSVG])
	if strings.Contains(svg, "<animate") || !strings.Contains(svg, "Total: 2,100") {
		t.Error("Year should render that frame statically")
	}

	_, err = r.Execute(context.Background(), Options{
		Kind: KindMap, Dataset: testData(), Regions: []string{"Asia"},
		Start: 2013, End: 2014, Year: 2020,
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidYear {
		t.Errorf("year outside the frames: err = %v", err)
	}
}

func TestExecuteFlow(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Kind: KindFlow, Dataset: testData(), Regions: []string{"Asia", "Africa"},
		Start: 2013, End: 2014, Formats: []string{FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Layout.Flow == nil || res.Layout.Flow.Empty() {
		t.Fatal("flow layout missing")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %.40q", res.Artifacts[FormatDOT])
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing")
	}
}

func TestExecuteEmptySelection(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Kind: KindMap, Dataset: testData()})
	if err != nil {
		t.Fatalf("empty selection is not an error: %v", err)
	}
	if !res.Layout.Empty() {
		t.Error("no regions should give an empty layout")
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "sphere") {
		t.Error("empty map still draws the base map")
	}
}

func TestExecuteLoadsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrivals.csv")
	csv := "Country,Region,2013,2014\nSyria,Asia,\"1,000\",D\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	r := NewRunner(cache.NewNullCache(), nil, nil)
	res, err := r.Execute(context.Background(), Options{Kind: KindOverview, Source: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Records != 1 {
		t.Errorf("Records = %d, want 1", res.Stats.Records)
	}
	if rec.loads != 1 || rec.layouts != 1 || rec.renders != 1 {
		t.Errorf("hooks = %+v", rec)
	}

	_, err = r.Execute(context.Background(), Options{Kind: KindOverview, Source: filepath.Join(dir, "nope.csv")})
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file: err = %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu                      sync.Mutex
	loads, layouts, renders int
}

func (h *recordingHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads++
}

func (h *recordingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}
