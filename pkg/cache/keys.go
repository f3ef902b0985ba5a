package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendering of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Kind    string  `json:"kind"`
	Format  string  `json:"format"`
	Frame   int     `json:"frame"`
	Scale   float64 `json:"scale,omitempty"`
	Labels  bool    `json:"labels"`
	Title   string  `json:"title,omitempty"`
	Cadence string  `json:"cadence,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
