package layout

import (
	"fmt"
	"strings"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
)

// Position is the absolute rectangle assigned to one match. Produced
// exactly once per valid match per layout pass and discarded after
// rendering.
type Position struct {
	MatchID    string  `json:"matchId" bson:"match_id"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	RoundIndex int     `json:"roundIndex" bson:"round_index"`
	MatchIndex int     `json:"matchIndex" bson:"match_index"`
}

// Right returns the x coordinate of the rectangle's right edge.
func (p Position) Right() float64 { return p.X + p.Width }

// CenterY returns the vertical center of the rectangle.
func (p Position) CenterY() float64 { return p.Y + p.Height/2 }

// MatchPositions assigns an absolute rectangle to every match. Each
// round is centered vertically in the container:
//
//	roundStartY = (containerHeight - totalRoundHeight) / 2
//
// A negative roundStartY means the content overflows the container; the
// value is preserved as-is because the scaling cascade consumes it as an
// overflow signal. Horizontal position is roundIndex*(roundWidth +
// roundGap). Placement is deterministic and order-preserving: match i of
// round r always lands at rank i within that round.
//
// Results are memoized on the per-round match ids plus the dimension
// scalars; a memo hit returns the previously computed slice itself.
func MatchPositions(rounds [][]bracket.Match, dims Dimensions, memo *cache.Memo) []Position {
	if len(rounds) == 0 {
		return []Position{}
	}

	key := positionsFingerprint(rounds, dims)
	if v, ok := memo.Get(key); ok {
		if positions, ok := v.([]Position); ok {
			return positions
		}
	}

	var positions []Position
	for roundIndex, round := range rounds {
		if len(round) == 0 {
			continue
		}

		totalRoundHeight := float64(len(round))*dims.MatchHeight +
			float64(len(round)-1)*dims.MatchVerticalGap
		roundStartY := (dims.ContainerHeight - totalRoundHeight) / 2
		x := float64(roundIndex) * (dims.RoundWidth + dims.RoundGap)

		for matchIndex, m := range round {
			positions = append(positions, Position{
				MatchID:    m.ID,
				X:          x,
				Y:          roundStartY + float64(matchIndex)*(dims.MatchHeight+dims.MatchVerticalGap),
				Width:      dims.RoundWidth,
				Height:     dims.MatchHeight,
				RoundIndex: roundIndex,
				MatchIndex: matchIndex,
			})
		}
	}
	if positions == nil {
		return []Position{}
	}

	memo.Put(key, positions)
	return positions
}

// PositionIndex maps match ids to their computed positions for O(1)
// connector lookups.
func PositionIndex(positions []Position) map[string]Position {
	index := make(map[string]Position, len(positions))
	for _, p := range positions {
		index[p.MatchID] = p
	}
	return index
}

// positionsFingerprint builds the memo key from ordered per-round match
// ids and the dimension scalars.
func positionsFingerprint(rounds [][]bracket.Match, dims Dimensions) string {
	var b strings.Builder
	b.WriteString("positions:")
	for _, round := range rounds {
		for _, m := range round {
			b.WriteString(m.ID)
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	fmt.Fprintf(&b, "%g:%g:%g:%g:%g:%g",
		dims.ContainerWidth, dims.ContainerHeight,
		dims.RoundWidth, dims.RoundGap,
		dims.MatchHeight, dims.MatchVerticalGap)
	return b.String()
}
