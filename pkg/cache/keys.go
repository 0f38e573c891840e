package cache

// ArtifactKeyOpts are the options that change a converted artifact's
// bytes. Anything that affects conversion output must appear here, or
// stale entries would be served after an option change.
type ArtifactKeyOpts struct {
	Format string  // target format (png, pdf)
	Scale  float64 // raster scale factor, 0 for vector output
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// ArtifactKey generates a key for a converted artifact. svgHash is the
	// content hash of the source SVG.
	ArtifactKey(svgHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a converted artifact.
func (k *DefaultKeyer) ArtifactKey(svgHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", svgHash, opts)
}
