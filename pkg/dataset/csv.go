package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

// Column names recognized in the table header.
const (
	ColumnCountry = "Country"
	ColumnRegion  = "Region"
)

// ReadCSV reads a table whose header contains Country, Region and any number
// of 4-digit year columns. Unknown columns are ignored. Short rows are padded
// with empty cells.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "empty table")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read header")
	}

	countryCol, regionCol := -1, -1
	yearCols := make(map[int]int)
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case h == ColumnCountry:
			countryCol = i
		case h == ColumnRegion:
			regionCol = i
		default:
			if y, ok := parseYearKey(h); ok {
				yearCols[i] = y
			}
		}
	}
	if countryCol < 0 || regionCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "header must contain %q and %q columns", ColumnCountry, ColumnRegion)
	}

	ds := &Dataset{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read row %d", len(ds.Records)+2)
		}
		rec := Record{
			Country: strings.TrimSpace(cell(row, countryCol)),
			Region:  strings.TrimSpace(cell(row, regionCol)),
			Values:  make(map[int]string, len(yearCols)),
		}
		if rec.Country == "" {
			continue
		}
		for col, year := range yearCols {
			rec.Values[year] = cell(row, col)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseYearKey accepts exactly four ASCII digits.
func parseYearKey(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	return y, err == nil
}
