// Package dataset loads the annual country/region refugee table and
// normalizes its cells.
//
// A dataset is a list of [Record] values, one per country, each holding the
// raw cell text for every 4-digit year column. Records are read-only once
// loaded: the layout engines parse cells on demand with [ParseValue] and
// never mutate the table.
//
// # Cell Parsing
//
// [ParseValue] implements the silent-repair policy for table cells:
//
//	""      -> {0, false}
//	"D"     -> {50, true}   // value withheld for disclosure
//	"1,234" -> {1234, false}
//	"n/a"   -> {0, false}
//
// Malformed text is never an error. The visualization must always render.
//
// # Sources
//
// [ReadCSV] reads the canonical `Country,Region,2013,...` layout.
// [ReadJSON] reads an array of row objects whose year keys are 4-digit
// strings, as exported by spreadsheet tools. [Load] dispatches on the file
// extension.
package dataset
