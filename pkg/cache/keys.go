package cache

// Keyer generates cache keys for the byte cache so CLI, server, and
// tests agree on key construction.
type Keyer interface {
	// LayoutKey generates a key for a serialized layout computation.
	// contentHash fingerprints the validated match data.
	LayoutKey(contentHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// layoutHash fingerprints the serialized layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs that change a layout result.
type LayoutKeyOpts struct {
	ContainerWidth  float64
	ContainerHeight float64
	MinScale        float64
	RoundWidth      float64
	RoundGap        float64
	MatchHeight     float64
	MatchGap        float64
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	ShowLabels bool
	Scores     bool
	Detailed   bool
	Title      string
	Background string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(contentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", contentHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
