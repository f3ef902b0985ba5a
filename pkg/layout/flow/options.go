package flow

// Default layout constants.
const (
	DefaultTopN          = 10
	DefaultColumnHeight  = 500.0
	DefaultNodeGap       = 2.0
	DefaultNodeWidth     = 10.0
	DefaultColumnSpacing = 300.0
)

// Options controls bucketing and geometry. Zero fields take the defaults.
type Options struct {
	// TopN is the number of named categories per column.
	TopN int `toml:"top_n" json:"top_n"`
	// ColumnHeight is the summed node height of a column, gaps excluded.
	ColumnHeight float64 `toml:"column_height" json:"column_height"`
	NodeGap      float64 `toml:"node_gap" json:"node_gap"`
	NodeWidth    float64 `toml:"node_width" json:"node_width"`
	// ColumnSpacing is the horizontal span from the first to the last column.
	ColumnSpacing float64 `toml:"column_spacing" json:"column_spacing"`
}

// withDefaults fills zero or negative fields.
func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.ColumnHeight <= 0 {
		o.ColumnHeight = DefaultColumnHeight
	}
	if o.NodeGap <= 0 {
		o.NodeGap = DefaultNodeGap
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.ColumnSpacing <= 0 {
		o.ColumnSpacing = DefaultColumnSpacing
	}
	return o
}
