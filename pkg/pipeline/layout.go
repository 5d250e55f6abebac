package pipeline

import (
	"context"
	"time"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the complete serializable layout for the
// rounds: match positions, the scaling decision, connector paths, and
// the advisory strategy. The computation is pure and never fails;
// degenerate inputs produce an empty but well-formed layout.
//
// Intermediate results are memoized on the runner's Memo, so repeated
// calls with the same rounds and geometry are cheap even when the byte
// cache misses.
func (r *Runner) GenerateLayout(ctx context.Context, rounds [][]bracket.Match, opts Options) layout.Layout {
	opts.SetLayoutDefaults()
	start := time.Now()

	total := bracket.TotalMatches(rounds)
	observability.Pipeline().OnLayoutStart(ctx, total, len(rounds))

	container := opts.Container()
	dims := opts.Dimensions()

	positions := layout.MatchPositions(rounds, dims, r.Memo)
	scaling := layout.ScaleToFit(container, dims, rounds, opts.MinScale, r.Memo)
	connections := layout.BuildConnections(rounds, positions, dims)

	// The cascade's usability floor can reintroduce overflow; grant the
	// scroll allowance for any axis the scaled content still exceeds.
	content := layout.ContentSize(rounds, dims)
	if !scaling.FitsWithoutScaling {
		overflow := layout.OverflowScaling(container, content, scaling.ScaleFactor)
		scaling.AllowScrollX = overflow.AllowScrollX
		scaling.AllowScrollY = overflow.AllowScrollY
	}

	roundIDs := make([][]string, len(rounds))
	for i, round := range rounds {
		roundIDs[i] = make([]string, len(round))
		for j, m := range round {
			roundIDs[i][j] = m.ID
		}
	}

	lay := layout.Layout{
		Container:         container,
		Content:           content,
		Dimensions:        dims,
		Positions:         positions,
		Connections:       connections,
		Scaling:           scaling,
		Rounds:            roundIDs,
		Strategy:          layout.OptimalStrategy(container),
		SingleElimination: bracket.IsSingleElimination(rounds),
	}

	observability.Pipeline().OnLayoutComplete(ctx, scaling.ScaleFactor, time.Since(start), nil)
	return lay
}
