// Package pipeline provides the core bracket layout pipeline for Bracketeer.
//
// This package implements the complete validate → organize → layout → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Validate: Check raw match records and drop the unusable ones
//  2. Organize: Group validated matches into bracket rounds
//  3. Layout: Compute positions, scaling, and connector paths
//  4. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Matches: rawMatches,
//	    Width:   1200,
//	    Height:  800,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Validate only
//	matches, validation, err := runner.Validate(ctx, opts)
//
//	// Layout with existing rounds
//	lay, err := runner.GenerateLayout(ctx, rounds, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, rounds, lay, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the bracket pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Matches []*bracket.RawMatch `json:"matches,omitempty"`
	Source  string              `json:"source,omitempty"` // Source name for logs and hooks

	// Layout options
	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
	RoundWidth       float64 `json:"round_width,omitempty"`
	RoundGap         float64 `json:"round_gap,omitempty"`
	MatchHeight      float64 `json:"match_height,omitempty"`
	MatchVerticalGap float64 `json:"match_vertical_gap,omitempty"`
	MinScale         float64 `json:"min_scale,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	RoundLabels bool     `json:"round_labels,omitempty"`
	Scores      bool     `json:"scores,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // Detailed DOT node labels
	Title       string   `json:"title,omitempty"`
	Background  string   `json:"background,omitempty"`

	// Refresh bypasses the byte cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Matches are the validated, bracket-ordered match records.
	Matches []bracket.Match

	// Rounds is the round grouping the layout was computed from.
	Rounds [][]bracket.Match

	// Validation aggregates the per-match diagnostics.
	Validation bracket.ValidationResult

	// EdgeCases reports degenerate layout situations.
	EdgeCases layout.EdgeCaseResult

	// Layout is the computed bracket geometry.
	Layout layout.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the byte cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MatchCount   int
	RoundCount   int
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForInput(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForInput checks required fields for the validation stage.
func (o *Options) ValidateForInput() error {
	if o.Matches == nil {
		return errors.New(errors.ErrCodeInvalidInput, "matches are required")
	}
	if o.Source == "" {
		o.Source = "inline"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinScale == 0 {
		o.MinScale = layout.MinScaleFactor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Container returns the container size for the layout stage.
func (o *Options) Container() layout.Size {
	return layout.Size{Width: o.Width, Height: o.Height}
}

// Dimensions builds the layout dimensions, applying option overrides on
// top of the design defaults.
func (o *Options) Dimensions() layout.Dimensions {
	dims := layout.DefaultDimensions(o.Container())
	if o.RoundWidth > 0 {
		dims.RoundWidth = o.RoundWidth
	}
	if o.RoundGap > 0 {
		dims.RoundGap = o.RoundGap
	}
	if o.MatchHeight > 0 {
		dims.MatchHeight = o.MatchHeight
	}
	if o.MatchVerticalGap > 0 {
		dims.MatchVerticalGap = o.MatchVerticalGap
	}
	return dims
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	dims := o.Dimensions()
	return cache.LayoutKeyOpts{
		ContainerWidth:  o.Width,
		ContainerHeight: o.Height,
		MinScale:        o.MinScale,
		RoundWidth:      dims.RoundWidth,
		RoundGap:        dims.RoundGap,
		MatchHeight:     dims.MatchHeight,
		MatchGap:        dims.MatchVerticalGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.RoundLabels,
		Scores:     o.Scores,
		Detailed:   o.Detailed,
		Title:      o.Title,
		Background: o.Background,
	}
}
