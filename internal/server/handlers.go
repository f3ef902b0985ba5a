package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/refugeeflow/internal/config"
	"github.com/matzehuels/refugeeflow/pkg/buildinfo"
	"github.com/matzehuels/refugeeflow/pkg/cache"
	"github.com/matzehuels/refugeeflow/pkg/errors"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

type healthResponse struct {
	Status  string         `json:"status"`
	Records int            `json:"records"`
	Dataset string         `json:"dataset"`
	Years   []int          `json:"years"`
	Build   buildinfo.Info `json:"build"`
	Uptime  string         `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Records: s.dataset.Len(),
		Dataset: shortHash(s.datasetHash),
		Years:   s.dataset.Years(),
		Build:   buildinfo.Get(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

type regionInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	// Present reports whether the dataset has records in this region.
	Present bool `json:"present"`
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	present := make(map[string]bool)
	for _, name := range s.dataset.Regions() {
		present[name] = true
	}
	all := region.All()
	out := make([]regionInfo, 0, len(all))
	for _, name := range all {
		out = append(out, regionInfo{Name: name, Color: region.MustColor(name), Present: present[name]})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender serves one artifact of kind. The response carries an ETag of
// the artifact bytes; a matching If-None-Match gets 304.
func (s *Server) handleRender(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(kind, r.URL.Query())
		if err != nil {
			writeError(w, err)
			return
		}
		opts.Dataset = s.dataset

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		format := opts.Formats[0]
		data := result.Artifacts[format]

		h := w.Header()
		h.Set("Content-Type", contentTypes[format])
		h.Set("X-Layout-Hash", result.LayoutHash)
		if result.CacheInfo.RenderHit {
			h.Set("X-Cache", "HIT")
		} else {
			h.Set("X-Cache", "MISS")
		}
		if missing := result.Layout.Missing(); len(missing) > 0 {
			h.Set("X-Missing-Countries", strings.Join(missing, ","))
		}

		etag := `"` + cache.Hash(data) + `"`
		h.Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// optionsFromQuery builds pipeline options from request parameters.
// regions may be comma-separated or repeated; years takes the same
// "2015" or "2013-2022" syntax as the config file, while start and end set
// the bounds individually.
func optionsFromQuery(kind string, q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Kind:    kind,
		VizType: q.Get("viz"),
		Title:   q.Get("title"),
		Mode:    frames.Mode(q.Get("mode")),
	}
	for _, v := range q["regions"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Regions = append(opts.Regions, name)
			}
		}
	}

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts.Formats = []string{format}

	if years := q.Get("years"); years != "" {
		start, end, err := config.ParseYears(years)
		if err != nil {
			return opts, err
		}
		opts.Start, opts.End = start, end
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"start", &opts.Start},
		{"end", &opts.End},
		{"year", &opts.Year},
		{"top_n", &opts.Flow.TopN},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", p.name, v)
		}
		*p.dst = n
	}
	if opts.Flow.TopN < 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "top_n must not be negative")
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"scale", &opts.Scale},
	}
	for _, p := range floats {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: not a non-negative number: %q", p.name, v)
		}
		*p.dst = f
	}

	for _, b := range []struct {
		name string
		dst  *bool
		flip bool
	}{
		{"labels", &opts.NoLabels, true},
		{"refresh", &opts.Refresh, false},
	} {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		val, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", b.name, v)
		}
		*b.dst = val != b.flip
	}
	return opts, nil
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// writeError maps error codes to HTTP statuses. Internal failures never
// leak their message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case errors.IsInvalid(err), code == errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	resp := errorResponse{Error: strings.ToLower(string(code))}
	if status != http.StatusInternalServerError {
		resp.Description = errors.UserMessage(err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
