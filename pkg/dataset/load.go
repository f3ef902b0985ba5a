package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

// Load reads a dataset from disk. Files ending in .json are parsed with
// [ReadJSON]; everything else is treated as CSV.
func Load(path string) (*Dataset, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dataset %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(data)
	}
	return ReadCSV(bytes.NewReader(data))
}
