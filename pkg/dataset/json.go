package dataset

import (
	"github.com/tidwall/gjson"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

// ReadJSON reads an array of row objects:
//
//	[{"Country": "Syria", "Region": "Asia", "2013": "1,234", "2014": "D"}, ...]
//
// Year keys are discovered per row. Numeric JSON values are kept as their
// literal text so they go through the same cell parser as CSV input.
func ReadJSON(data []byte) (*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "malformed JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "expected a JSON array of rows")
	}

	ds := &Dataset{}
	root.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			return true
		}
		rec := Record{Values: make(map[int]string)}
		row.ForEach(func(key, val gjson.Result) bool {
			k := key.String()
			switch k {
			case ColumnCountry:
				rec.Country = val.String()
			case ColumnRegion:
				rec.Region = val.String()
			default:
				if y, ok := parseYearKey(k); ok {
					rec.Values[y] = cellText(val)
				}
			}
			return true
		})
		if rec.Country != "" {
			ds.Records = append(ds.Records, rec)
		}
		return true
	})
	return ds, nil
}

func cellText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.Number:
		return v.Raw
	default:
		return v.String()
	}
}
