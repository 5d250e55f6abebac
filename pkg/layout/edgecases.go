package layout

import (
	"fmt"

	"github.com/stageside/bracketeer/pkg/bracket"
)

// Edge-case thresholds.
const (
	// minUsefulContainerWidth/Height mark the point below which a
	// bracket is unlikely to be readable at any scale.
	minUsefulContainerWidth  = 300.0
	minUsefulContainerHeight = 200.0

	// hugeTournamentThreshold is the total match count above which
	// rendering cost becomes noticeable.
	hugeTournamentThreshold = 128
)

// EdgeCaseResult reports degenerate layout situations. Invalid means the
// caller should show an empty state instead of rendering; warnings are
// informational and never block rendering.
type EdgeCaseResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

// EdgeCases inspects rounds and container before layout and reports the
// degenerate situations the renderer may want to surface. It never
// fails: impossible inputs yield an invalid result with an explanatory
// warning rather than NaN geometry downstream.
func EdgeCases(rounds [][]bracket.Match, container Size) EdgeCaseResult {
	if len(rounds) == 0 {
		return EdgeCaseResult{
			Valid:    false,
			Warnings: []string{"No rounds available for display"},
		}
	}

	total := bracket.TotalMatches(rounds)
	if total == 0 {
		return EdgeCaseResult{
			Valid:    false,
			Warnings: []string{"All rounds are empty"},
		}
	}

	var warnings []string

	if container.Width < minUsefulContainerWidth || container.Height < minUsefulContainerHeight {
		warnings = append(warnings, fmt.Sprintf(
			"Container dimensions are very small (%.0fx%.0f); bracket may be unreadable",
			container.Width, container.Height))
	}

	if total == 1 {
		warnings = append(warnings, "Bracket contains a single match")
	}

	if total > hugeTournamentThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"Large tournament (%d matches); rendering may be slow", total))
	}

	if warnings == nil {
		warnings = []string{}
	}
	return EdgeCaseResult{Valid: true, Warnings: warnings}
}
