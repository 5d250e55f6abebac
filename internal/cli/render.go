package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/pipeline"
	"github.com/stageside/bracketeer/pkg/render"
)

// formatPDF is CLI-only: the pipeline renders SVG and the CLI converts it.
const formatPDF = "pdf"

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		remote     sourceFlags
		geom       layoutFlags
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [matches.json]",
		Short: "Render a bracket to SVG, PNG, PDF, or DOT",
		Long: `Render a bracket to SVG, PNG, PDF, or DOT.

The render command runs the full pipeline: it validates the raw match
records, organizes them into rounds, computes the layout, and renders
the requested output formats. Use 'layout' and 'visualize' separately
to inspect or post-process the intermediate layout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := validateCLIFormats(formats); err != nil {
				return err
			}
			opts.Formats = pipelineFormats(formats)
			return c.runRender(cmd.Context(), args, remote, geom, opts, formats, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.RoundLabels, "round-labels", false, "label each round column (Final, Semifinals, ...)")
	cmd.Flags().BoolVar(&opts.Scores, "scores", false, "show scores on completed matches")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show detailed node labels (dot)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title text above the bracket")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background fill color")
	remote.register(cmd)
	geom.register(cmd)

	return cmd
}

// runRender runs the full pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, args []string, remote sourceFlags, geom layoutFlags, opts pipeline.Options, formats []string, output string, noCache, refresh bool) error {
	raw, sourceName, err := c.loadMatches(ctx, args, remote)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Matches = raw
	opts.Source = sourceName
	opts.Refresh = refresh
	opts.Logger = c.Logger
	geom.apply(&opts)

	spinner := newSpinnerWithContext(ctx, "Rendering bracket...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, w := range result.Validation.Warnings {
		printWarning("%s", w)
	}
	if !result.EdgeCases.Valid {
		for _, w := range result.EdgeCases.Warnings {
			printError("%s", w)
		}
		return fmt.Errorf("bracket cannot be laid out")
	}

	input := sourceName
	if remote.set() {
		input = "bracket"
	}
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}

	printStats(result.Stats.MatchCount, result.Stats.RoundCount, result.CacheInfo.RenderHit)
	return nil
}

// =============================================================================
// Format Handling
// =============================================================================

// validCLIFormats is the set of formats the CLI accepts. PDF is handled
// by converting the rendered SVG.
var validCLIFormats = map[string]bool{
	pipeline.FormatSVG:  true,
	pipeline.FormatPNG:  true,
	pipeline.FormatDOT:  true,
	pipeline.FormatJSON: true,
	formatPDF:           true,
}

// validateCLIFormats checks that all requested formats are valid.
func validateCLIFormats(formats []string) error {
	for _, f := range formats {
		if !validCLIFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', 'dot', or 'json')", f)
		}
	}
	return nil
}

// pipelineFormats maps the requested CLI formats onto pipeline formats,
// substituting SVG for PDF.
func pipelineFormats(formats []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range formats {
		if f == formatPDF {
			f = pipeline.FormatSVG
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each requested format to disk. A single format
// writes to the output path directly; multiple formats treat output as a
// base path and append the format extension.
func writeArtifacts(p artifactWriteParams) error {
	single := len(p.formats) == 1

	for _, format := range p.formats {
		data, err := artifactData(p.artifacts, format)
		if err != nil {
			return err
		}

		var path string
		if single && p.output != "" {
			path = p.output
		} else {
			path = basePath(p.output, p.input) + "." + format
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Generated %s", path)
	}
	return nil
}

// artifactData returns the bytes for a format, converting SVG to PDF
// on demand.
func artifactData(artifacts map[string][]byte, format string) ([]byte, error) {
	if format == formatPDF {
		svg, ok := artifacts[pipeline.FormatSVG]
		if !ok {
			return nil, fmt.Errorf("missing svg artifact for pdf conversion")
		}
		return render.ToPDF(svg)
	}

	data, ok := artifacts[format]
	if !ok {
		return nil, fmt.Errorf("missing %s artifact", format)
	}
	return data, nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validCLIFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
