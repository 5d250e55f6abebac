package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// validateCommand creates the validate command for checking match records.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict bool
		remote sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "validate [matches.json]",
		Short: "Validate tournament match records",
		Long: `Validate tournament match records.

The validate command reads raw match records from a JSON file (or from
MongoDB with --mongo-uri) and reports every structural problem it finds:
missing identifiers, absent or malformed alliance data, duplicate bracket
slots, and inconsistent round structure.

Records that fail validation are dropped from the bracket rather than
repaired; the diagnostics explain why. With --strict, any warning also
fails the command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args, remote, strict)
		},
	}

	remote.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

// runValidate loads the matches, validates them, and prints the diagnostics.
func (c *CLI) runValidate(ctx context.Context, args []string, remote sourceFlags, strict bool) error {
	raw, sourceName, err := c.loadMatches(ctx, args, remote)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	matches, validation, err := runner.Validate(ctx, pipeline.Options{
		Matches: raw,
		Source:  sourceName,
		Logger:  c.Logger,
	})
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	prog.done(fmt.Sprintf("Validated %d records", len(raw)))

	for _, e := range validation.Errors {
		printError("%s", e)
	}
	for _, w := range validation.Warnings {
		printWarning("%s", w)
	}

	rounds := bracket.OrganizeIntoRounds(matches, runner.Memo)

	if !validation.Valid {
		printNewline()
		return fmt.Errorf("%d of %d records failed validation", len(raw)-len(matches), len(raw))
	}
	if strict && len(validation.Warnings) > 0 {
		printNewline()
		return fmt.Errorf("%d warnings (strict mode)", len(validation.Warnings))
	}

	printSuccess("All records valid")
	printStats(len(matches), len(rounds), false)
	if bracket.IsSingleElimination(rounds) {
		printDetail("Structure: single elimination")
	}
	printNewline()
	printNextStep("Next", appName+" layout "+sourceName)

	return nil
}
