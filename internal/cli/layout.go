package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// layoutCommand creates the layout command for computing bracket layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		remote  sourceFlags
		geom    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [matches.json]",
		Short: "Compute the bracket layout from match records",
		Long: `Compute the bracket layout from match records.

The layout command validates the raw match records, organizes them into
rounds, and computes match positions, connector paths, and the scale
factor for the target container. The output is a layout.json file that
can be rendered to SVG/PNG/PDF using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, remote, geom, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	remote.register(cmd)
	geom.register(cmd)

	return cmd
}

// runLayout loads the matches, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, args []string, remote sourceFlags, geom layoutFlags, output string, noCache, refresh bool) error {
	raw, sourceName, err := c.loadMatches(ctx, args, remote)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Matches: raw,
		Source:  sourceName,
		Refresh: refresh,
		Logger:  c.Logger,
	}
	geom.apply(&opts)

	matches, validation, err := runner.Validate(ctx, opts)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	for _, w := range validation.Warnings {
		printWarning("%s", w)
	}
	if !validation.Valid {
		for _, e := range validation.Errors {
			printError("%s", e)
		}
		return fmt.Errorf("%d records failed validation", len(validation.Errors))
	}

	rounds := bracket.OrganizeIntoRounds(matches, runner.Memo)
	if edge := layout.EdgeCases(rounds, layout.Size{Width: opts.Width, Height: opts.Height}); !edge.Valid {
		for _, w := range edge.Warnings {
			printError("%s", w)
		}
		return fmt.Errorf("bracket cannot be laid out")
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	lay, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, rounds, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
		if remote.set() {
			base = "bracket"
		}
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteLayoutFile(lay, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(matches), len(rounds), cacheHit)
	printDetail("Scale: %.2f", lay.Scaling.ScaleFactor)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
