package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"
)

// Record is one country row of the table.
type Record struct {
	Country string         `json:"country"`
	Region  string         `json:"region"`
	Values  map[int]string `json:"values"`
}

// Value parses the cell for year. Missing columns parse as zero.
func (r Record) Value(year int) Value {
	return ParseValue(r.Values[year])
}

// Dataset is an ordered, read-only collection of records.
type Dataset struct {
	Records []Record `json:"records"`
}

// New wraps records in a Dataset. The slice is not copied.
func New(records []Record) *Dataset {
	return &Dataset{Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Years returns every year column present in any record, ascending.
func (d *Dataset) Years() []int {
	if d == nil {
		return nil
	}
	set := make(map[int]struct{})
	for _, r := range d.Records {
		for y := range r.Values {
			set[y] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Regions returns the distinct region names in first-seen order.
func (d *Dataset) Regions() []string {
	if d == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, r := range d.Records {
		if r.Region == "" || seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		out = append(out, r.Region)
	}
	return out
}

// Filter returns the records whose region is in regions, preserving input
// order. An empty region list selects nothing.
func (d *Dataset) Filter(regions []string) []Record {
	if d == nil || len(regions) == 0 {
		return nil
	}
	var out []Record
	for _, r := range d.Records {
		if slices.Contains(regions, r.Region) {
			out = append(out, r)
		}
	}
	return out
}

// Hash returns a hex SHA-256 of the records. Equal tables hash equally
// regardless of how they were loaded.
func (d *Dataset) Hash() string {
	var records []Record
	if d != nil {
		records = d.Records
	}
	data, _ := json.Marshal(records)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
