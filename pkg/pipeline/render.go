package pipeline

import (
	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/render"
	"github.com/stageside/bracketeer/pkg/render/dot"
	"github.com/stageside/bracketeer/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
//
// SVG and PNG render the geometric bracket; DOT emits the Graphviz tree
// for structure debugging; JSON serializes the layout itself.
func Render(rounds [][]bracket.Match, lay layout.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(rounds, lay, svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(svg.Render(rounds, lay, svgOpts...), 2.0)
		case FormatDOT:
			data = []byte(dot.ToDOT(rounds, dot.Options{Detailed: opts.Detailed}))
		case FormatJSON:
			data, err = layout.MarshalLayout(lay)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, rounds [][]bracket.Match, opts Options) (map[string][]byte, error) {
	parsed, err := layout.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	return Render(rounds, parsed, opts)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []svg.Option {
	var svgOpts []svg.Option
	if opts.RoundLabels {
		svgOpts = append(svgOpts, svg.WithRoundLabels())
	}
	if opts.Scores {
		svgOpts = append(svgOpts, svg.WithScores())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, svg.WithTitle(opts.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, svg.WithBackground(opts.Background))
	}
	return svgOpts
}
