package layout

import (
	"fmt"
	"math"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
)

// ScalingResult is the outcome of the scaling cascade: the uniform scale
// factor plus the offsets that center the scaled content. The renderer
// applies it as a transform/translate.
type ScalingResult struct {
	ScaleFactor        float64           `json:"scaleFactor" bson:"scale_factor"`
	OffsetX            float64           `json:"offsetX" bson:"offset_x"`
	OffsetY            float64           `json:"offsetY" bson:"offset_y"`
	FitsWithoutScaling bool              `json:"fitsWithoutScaling" bson:"fits_without_scaling"`
	AllowScrollX       bool              `json:"allowScrollX,omitempty" bson:"allow_scroll_x,omitempty"`
	AllowScrollY       bool              `json:"allowScrollY,omitempty" bson:"allow_scroll_y,omitempty"`
	ScaledDimensions   *ScaledDimensions `json:"scaledDimensions,omitempty" bson:"scaled_dimensions,omitempty"`
}

// Scaling runs the scaling decision cascade for a container/content
// pair, using the design-resolution match box for the usability floor.
// The cascade is strictly ordered:
//
//  1. Fit check: content inside the padded container (minus the round
//     label band) keeps scale 1.
//  2. Proportional scale: the more restrictive of width and height
//     scale, so both axes fit.
//  3. Readability floor: raise toward the minimum readable font size,
//     but only if the raised scale still fits both axes.
//  4. Absolute clamp to [MinScaleFactor, MaxScaleFactor] (or the
//     caller's stricter floor).
//  5. Usability floor: a match box below the minimum interactive pixel
//     size forces a larger scale regardless of viewport fit. This can
//     reintroduce overflow; [OverflowScaling] decides the scroll
//     allowance in that case.
func Scaling(container, content Size, minScale float64) ScalingResult {
	return cascade(container, content, minScale, DefaultRoundWidth, DefaultMatchHeight)
}

// ScaleToFit is the richer variant used by the pipeline: it derives
// content size from the rounds, runs the cascade against the actual
// match dimensions and the caller's scale floor, and attaches the
// scaled dimension set. Results are memoized alongside positions.
func ScaleToFit(container Size, dims Dimensions, rounds [][]bracket.Match, minScale float64, memo *cache.Memo) ScalingResult {
	key := scalingFingerprint(container, dims, rounds, minScale)
	if v, ok := memo.Get(key); ok {
		if result, ok := v.(ScalingResult); ok {
			return result
		}
	}

	content := ContentSize(rounds, dims)
	result := cascade(container, content, minScale, dims.RoundWidth, dims.MatchHeight)
	scaled := dims.Scale(result.ScaleFactor)
	result.ScaledDimensions = &scaled

	memo.Put(key, result)
	return result
}

// cascade implements the ordered scaling decision. matchW/matchH are the
// design-resolution match box, needed for the usability floor.
func cascade(container, content Size, minScale, matchW, matchH float64) ScalingResult {
	availW := math.Max(container.Width-2*ViewportPadding, 1)
	availH := math.Max(container.Height-2*ViewportPadding-RoundLabelHeight, 1)

	// Step 1: fit check.
	if content.Width <= availW && content.Height <= availH {
		return withOffsets(container, content, ScalingResult{
			ScaleFactor:        1,
			FitsWithoutScaling: true,
		})
	}

	// Step 2: proportional scale.
	candidate := math.Min(availW/content.Width, availH/content.Height)

	// Step 3: readability floor, only when the raised scale still fits.
	if candidate*DesignFontSize < MinReadableFontSize {
		readable := MinReadableFontSize / DesignFontSize
		if content.Width*readable <= availW && content.Height*readable <= availH {
			candidate = readable
		}
	}

	// Step 4: absolute clamp.
	floor := math.Max(MinScaleFactor, minScale)
	candidate = math.Min(math.Max(candidate, floor), MaxScaleFactor)

	// Step 5: usability floor, irrespective of viewport fit.
	if matchW > 0 && candidate*matchW < MinMatchWidthPx {
		candidate = MinMatchWidthPx / matchW
	}
	if matchH > 0 && candidate*matchH < MinMatchHeightPx {
		candidate = math.Max(candidate, MinMatchHeightPx/matchH)
	}

	return withOffsets(container, content, ScalingResult{ScaleFactor: candidate})
}

// OverflowScaling handles the extreme case where content overflows the
// viewport even at the minimum scale. Instead of shrinking below the
// legibility floor, it grants a scroll allowance on the overflowing
// axes: horizontal when width overflows, vertical when height does,
// both only when both do.
func OverflowScaling(container, content Size, minScale float64) ScalingResult {
	scale := math.Max(MinScaleFactor, minScale)
	availW := math.Max(container.Width-2*ViewportPadding, 1)
	availH := math.Max(container.Height-2*ViewportPadding-RoundLabelHeight, 1)

	result := ScalingResult{
		ScaleFactor:  scale,
		AllowScrollX: content.Width*scale > availW,
		AllowScrollY: content.Height*scale > availH,
	}
	return withOffsets(container, content, result)
}

// withOffsets fills in the centering offsets for a scaling result. The
// horizontal offset centers scaled content; the vertical offset also
// accounts for the reserved round-label band. Overflowing content pins
// to the viewport padding so scrolling starts flush.
func withOffsets(container, content Size, result ScalingResult) ScalingResult {
	scaledW := content.Width * result.ScaleFactor
	scaledH := content.Height * result.ScaleFactor

	result.OffsetX = math.Max((container.Width-scaledW)/2, ViewportPadding)
	result.OffsetY = RoundLabelHeight + math.Max((container.Height-RoundLabelHeight-scaledH)/2, ViewportPadding)
	return result
}

// scalingFingerprint builds the memo key for ScaleToFit.
func scalingFingerprint(container Size, dims Dimensions, rounds [][]bracket.Match, minScale float64) string {
	sizes := make([]int, len(rounds))
	for i, r := range rounds {
		sizes[i] = len(r)
	}
	return fmt.Sprintf("scaling:%g:%g:%g:%g:%g:%g:%g:%v",
		container.Width, container.Height, minScale,
		dims.RoundWidth, dims.RoundGap,
		dims.MatchHeight, dims.MatchVerticalGap,
		sizes)
}

// =============================================================================
// Strategy Selector
// =============================================================================

// Scaling strategies returned by the advisory selector.
const (
	StrategyFitWidth  = "fit-width"
	StrategyFitBoth   = "fit-both"
	StrategyNoScaling = "no-scaling"
)

// Strategy is advisory metadata describing how a caller should approach
// scaling for a given container class. It carries a human-readable
// justification and never replaces the numeric cascade.
type Strategy struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// OptimalStrategy classifies the container by breakpoint and picks a
// scaling approach for it.
func OptimalStrategy(container Size) Strategy {
	switch {
	case container.Width < BreakpointMobile:
		return Strategy{
			Name:   StrategyFitWidth,
			Reason: fmt.Sprintf("mobile viewport (%.0fpx wide): fit to width and allow vertical scrolling", container.Width),
		}
	case container.Width < BreakpointTablet:
		return Strategy{
			Name:   StrategyFitBoth,
			Reason: fmt.Sprintf("tablet viewport (%.0fpx wide): scale to fit both axes", container.Width),
		}
	default:
		return Strategy{
			Name:   StrategyNoScaling,
			Reason: fmt.Sprintf("desktop viewport (%.0fpx wide): render at design resolution unless content overflows", container.Width),
		}
	}
}
