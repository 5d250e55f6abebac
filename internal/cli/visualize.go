package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr  string
		matchesPath string
		output      string
		noCache     bool
		remote      sourceFlags
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a bracket from a computed layout",
		Long: `Render a bracket from a computed layout.

The visualize command takes a layout.json file (produced by 'layout')
and renders it to SVG, PNG, or PDF. The layout contains all positioning
information; the match records (--matches or --mongo-uri) supply the
team labels and scores.

Use 'render' as a shortcut to go directly from match records to visual
output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := validateCLIFormats(formats); err != nil {
				return err
			}
			opts.Formats = pipelineFormats(formats)
			return c.runVisualize(cmd.Context(), args[0], matchesPath, remote, opts, formats, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&matchesPath, "matches", "m", "", "match records file for team labels and scores")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.RoundLabels, "round-labels", false, "label each round column (Final, Semifinals, ...)")
	cmd.Flags().BoolVar(&opts.Scores, "scores", false, "show scores on completed matches")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show detailed node labels (dot)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title text above the bracket")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background fill color")
	remote.register(cmd)

	return cmd
}

// runVisualize loads the layout and match records and renders the bracket.
func (c *CLI) runVisualize(ctx context.Context, input, matchesPath string, remote sourceFlags, opts pipeline.Options, formats []string, output string, noCache bool) error {
	lay, err := layout.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	var matchArgs []string
	if matchesPath != "" {
		matchArgs = []string{matchesPath}
	}
	if matchesPath == "" && !remote.set() {
		return fmt.Errorf("match records are required: pass --matches or --mongo-uri")
	}

	raw, sourceName, err := c.loadMatches(ctx, matchArgs, remote)
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
	opts.Logger = c.Logger

	matches, validation, err := runner.Validate(ctx, opts)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !validation.Valid {
		for _, e := range validation.Errors {
			printError("%s", e)
		}
		return fmt.Errorf("%d records failed validation", len(validation.Errors))
	}
	rounds := bracket.OrganizeIntoRounds(matches, runner.Memo)

	spinner := newSpinnerWithContext(ctx, "Rendering bracket...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, rounds, lay, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}

	printStats(len(matches), len(rounds), cacheHit)
	return nil
}
