package geo

import "maps"

// DefaultObserver is the country the map is drawn from.
const DefaultObserver = "United States of America"

// DefaultAliases maps dataset country names to geometry-source names.
var DefaultAliases = map[string]string{
	"Bosnia and Herzegovina":     "Bosnia and Herz.",
	"Burma":                      "Myanmar",
	"Central African Republic":   "Central African Rep.",
	"China, People's Republic":   "China",
	"Congo, Democratic Republic": "Dem. Rep. Congo",
	"Congo, Republic":            "Congo",
	"Cote d'Ivoire":              "Côte d'Ivoire",
	"Dominican Republic":         "Dominican Rep.",
	"North Macedonia":            "Macedonia",
	"South Sudan":                "S. Sudan",
}

// Alias returns the geometry-source name for a dataset country name using
// [DefaultAliases]. Unaliased names are returned unchanged.
func Alias(name string) string {
	return aliasIn(DefaultAliases, name)
}

func aliasIn(table map[string]string, name string) string {
	if a, ok := table[name]; ok {
		return a
	}
	return name
}

func cloneAliases(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
