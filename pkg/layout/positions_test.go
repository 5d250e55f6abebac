package layout

import (
	"fmt"
	"testing"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
)

// testRounds builds rounds of the given sizes with deterministic ids.
func testRounds(sizes ...int) [][]bracket.Match {
	rounds := make([][]bracket.Match, len(sizes))
	for i, n := range sizes {
		round := make([]bracket.Match, n)
		for j := range round {
			round[j] = bracket.Match{ID: fmt.Sprintf("r%dm%d", i, j)}
		}
		rounds[i] = round
	}
	return rounds
}

func TestMatchPositionsCentersEachRound(t *testing.T) {
	dims := DefaultDimensions(Size{Width: 800, Height: 600})
	rounds := testRounds(2, 1)

	positions := MatchPositions(rounds, dims, cache.NewMemo())
	if len(positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(positions))
	}

	// Round 0: total height 2*80 + 20 = 180, start (600-180)/2 = 210.
	if got := positions[0].Y; got != 210 {
		t.Errorf("round 0 match 0 Y = %v, want 210", got)
	}
	if got := positions[1].Y; got != 310 {
		t.Errorf("round 0 match 1 Y = %v, want 310", got)
	}
	if got := positions[0].X; got != 0 {
		t.Errorf("round 0 X = %v, want 0", got)
	}

	// Round 1: single match centered at (600-80)/2 = 260, x = 220+60.
	if got := positions[2].Y; got != 260 {
		t.Errorf("round 1 Y = %v, want 260", got)
	}
	if got := positions[2].X; got != 280 {
		t.Errorf("round 1 X = %v, want 280", got)
	}

	for _, p := range positions {
		if p.Width != dims.RoundWidth || p.Height != dims.MatchHeight {
			t.Errorf("position %s box = %vx%v, want %vx%v",
				p.MatchID, p.Width, p.Height, dims.RoundWidth, dims.MatchHeight)
		}
	}
}

func TestMatchPositionsPreservesNegativeStart(t *testing.T) {
	// Four matches need 4*80 + 3*20 = 380px; a 100px container pushes
	// the round start negative, which the scaling pass reads as
	// overflow.
	dims := DefaultDimensions(Size{Width: 800, Height: 100})
	positions := MatchPositions(testRounds(4), dims, cache.NewMemo())

	if got := positions[0].Y; got != -140 {
		t.Errorf("Y = %v, want -140", got)
	}
}

func TestMatchPositionsEmpty(t *testing.T) {
	positions := MatchPositions(nil, DefaultDimensions(Size{Width: 800, Height: 600}), cache.NewMemo())
	if positions == nil || len(positions) != 0 {
		t.Errorf("positions = %v, want empty non-nil slice", positions)
	}
}

func TestMatchPositionsMemoIdentity(t *testing.T) {
	dims := DefaultDimensions(Size{Width: 800, Height: 600})
	rounds := testRounds(2, 1)
	memo := cache.NewMemo()

	a := MatchPositions(rounds, dims, memo)
	b := MatchPositions(rounds, dims, memo)
	if &a[0] != &b[0] {
		t.Error("repeated call did not return the memoized slice")
	}

	// Changing a dimension must miss the memo.
	other := dims
	other.RoundGap = 100
	c := MatchPositions(rounds, other, memo)
	if &a[0] == &c[0] {
		t.Error("different dimensions reused the memoized slice")
	}
}

func TestPositionIndex(t *testing.T) {
	dims := DefaultDimensions(Size{Width: 800, Height: 600})
	positions := MatchPositions(testRounds(2, 1), dims, cache.NewMemo())

	index := PositionIndex(positions)
	p, ok := index["r1m0"]
	if !ok {
		t.Fatal("r1m0 missing from index")
	}
	if p.RoundIndex != 1 || p.MatchIndex != 0 {
		t.Errorf("indices = (%d,%d), want (1,0)", p.RoundIndex, p.MatchIndex)
	}
	if p.Right() != p.X+p.Width {
		t.Errorf("Right() = %v, want %v", p.Right(), p.X+p.Width)
	}
	if p.CenterY() != p.Y+p.Height/2 {
		t.Errorf("CenterY() = %v, want %v", p.CenterY(), p.Y+p.Height/2)
	}
}
