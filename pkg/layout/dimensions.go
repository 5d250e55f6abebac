package layout

import (
	"github.com/stageside/bracketeer/pkg/bracket"
)

// =============================================================================
// Constants - Single Source of Truth for Geometry and Scaling
// =============================================================================

const (
	// ViewportPadding is the fixed margin reserved around bracket content
	// before any scaling calculation begins.
	ViewportPadding = 20.0

	// RoundLabelHeight is the vertical band reserved for round labels
	// above the bracket content.
	RoundLabelHeight = 40.0

	// DesignFontSize is the font size at design resolution (scale 1).
	DesignFontSize = 14.0

	// MinReadableFontSize is the smallest effective font size considered
	// readable after scaling.
	MinReadableFontSize = 10.0

	// MinScaleFactor and MaxScaleFactor bound the scale cascade output.
	MinScaleFactor = 0.3
	MaxScaleFactor = 1.0

	// MinMatchWidthPx and MinMatchHeightPx are the usability floors: a
	// match box below these pixel dimensions cannot be interacted with.
	MinMatchWidthPx  = 110.0
	MinMatchHeightPx = 44.0

	// Breakpoints for the advisory strategy selector.
	BreakpointMobile = 768.0
	BreakpointTablet = 1024.0
)

// Design-resolution defaults. Overridable through [DefaultDimensions]
// plus the config package.
const (
	DefaultRoundWidth       = 220.0
	DefaultRoundGap         = 60.0
	DefaultMatchHeight      = 80.0
	DefaultMatchVerticalGap = 20.0
)

// Size is a width/height pair in pixel units, used for both container
// (measured viewport) and content (unscaled bracket) dimensions.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Dimensions holds the scalar geometry parameters for one layout pass.
// Values are recomputed per pass and never mutated in place.
type Dimensions struct {
	ContainerWidth   float64 `json:"containerWidth" bson:"container_width"`
	ContainerHeight  float64 `json:"containerHeight" bson:"container_height"`
	RoundWidth       float64 `json:"roundWidth" bson:"round_width"`
	RoundGap         float64 `json:"roundGap" bson:"round_gap"`
	MatchHeight      float64 `json:"matchHeight" bson:"match_height"`
	MatchVerticalGap float64 `json:"matchVerticalGap" bson:"match_vertical_gap"`
}

// ScaledDimensions is a Dimensions snapshot with a scale factor applied.
type ScaledDimensions struct {
	Dimensions
	ScaleFactor float64 `json:"scaleFactor" bson:"scale_factor"`
}

// DefaultDimensions returns the design-resolution dimensions for the
// given container size.
func DefaultDimensions(container Size) Dimensions {
	return Dimensions{
		ContainerWidth:   container.Width,
		ContainerHeight:  container.Height,
		RoundWidth:       DefaultRoundWidth,
		RoundGap:         DefaultRoundGap,
		MatchHeight:      DefaultMatchHeight,
		MatchVerticalGap: DefaultMatchVerticalGap,
	}
}

// Scale returns a copy of d with every geometric parameter multiplied by
// factor. Container dimensions stay untouched; they describe the
// viewport, not the content.
func (d Dimensions) Scale(factor float64) ScaledDimensions {
	return ScaledDimensions{
		Dimensions: Dimensions{
			ContainerWidth:   d.ContainerWidth,
			ContainerHeight:  d.ContainerHeight,
			RoundWidth:       d.RoundWidth * factor,
			RoundGap:         d.RoundGap * factor,
			MatchHeight:      d.MatchHeight * factor,
			MatchVerticalGap: d.MatchVerticalGap * factor,
		},
		ScaleFactor: factor,
	}
}

// ContentSize computes the unscaled (design-resolution) width and height
// required to render all rounds. This is the content size the scaling
// cascade compares against the container.
func ContentSize(rounds [][]bracket.Match, dims Dimensions) Size {
	if len(rounds) == 0 {
		return Size{}
	}

	width := float64(len(rounds))*dims.RoundWidth + float64(len(rounds)-1)*dims.RoundGap

	maxMatches := bracket.MaxMatchesInRound(rounds)
	if maxMatches == 0 {
		return Size{}
	}
	height := float64(maxMatches)*dims.MatchHeight + float64(maxMatches-1)*dims.MatchVerticalGap

	return Size{Width: width, Height: height}
}
