package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/observability"
)

// Load reads the dataset at path and reports the stage to the pipeline
// hooks.
func Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	ds, err := dataset.Load(path)
	records := 0
	if ds != nil {
		records = ds.Len()
	}
	hooks.OnLoadComplete(ctx, path, records, time.Since(start), err)
	return ds, err
}
