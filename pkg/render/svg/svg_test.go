package svg

import (
	"strings"
	"testing"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/layout"
)

func testMatch(id string, red, blue int) bracket.Match {
	m := bracket.Match{ID: id, Status: bracket.StatusCompleted, WinningAlliance: bracket.WinnerRed, RedScore: 3, BlueScore: 1}
	m.Alliances = []bracket.Alliance{
		{Color: bracket.ColorRed, TeamAlliances: []bracket.TeamAlliance{{Team: &bracket.Team{TeamNumber: red}}}},
		{Color: bracket.ColorBlue, TeamAlliances: []bracket.TeamAlliance{{Team: &bracket.Team{TeamNumber: blue}}}},
	}
	return m
}

func testLayout(rounds [][]bracket.Match) layout.Layout {
	container := layout.Size{Width: 800, Height: 600}
	dims := layout.DefaultDimensions(container)
	memo := cache.NewMemo()
	positions := layout.MatchPositions(rounds, dims, memo)

	return layout.Layout{
		Container:   container,
		Content:     layout.ContentSize(rounds, dims),
		Dimensions:  dims,
		Positions:   positions,
		Connections: layout.BuildConnections(rounds, positions, dims),
		Scaling:     layout.ScaleToFit(container, dims, rounds, layout.MinScaleFactor, memo),
	}
}

func TestRender(t *testing.T) {
	rounds := [][]bracket.Match{
		{testMatch("m1", 118, 254), testMatch("m2", 148, 1678)},
		{testMatch("m3", 118, 148)},
	}
	out := string(Render(rounds, testLayout(rounds)))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg header: %s", out[:60])
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	for _, want := range []string{`id="match-m1"`, `id="match-m3"`, "Team 118", "Team 254"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "<path ") != 1 {
		t.Errorf("path count = %d, want 1 connector", strings.Count(out, "<path "))
	}
	if !strings.Contains(out, "translate(") || !strings.Contains(out, "scale(") {
		t.Error("content group is missing the layout transform")
	}
}

func TestRenderOptions(t *testing.T) {
	rounds := [][]bracket.Match{{testMatch("m1", 118, 254)}}
	l := testLayout(rounds)

	out := string(Render(rounds, l,
		WithRoundLabels(),
		WithScores(),
		WithTitle(`Einstein <Field 1>`),
		WithBackground("#f8fafc"),
	))

	if !strings.Contains(out, ">Final</text>") {
		t.Error("round label missing")
	}
	if !strings.Contains(out, "Einstein &lt;Field 1&gt;") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, `fill="#f8fafc"`) {
		t.Error("background missing")
	}
	// Completed match with scores enabled shows both alliance scores.
	if !strings.Contains(out, ">3</text>") || !strings.Contains(out, ">1</text>") {
		t.Error("scores missing")
	}

	// Without options none of that is emitted.
	plain := string(Render(rounds, l))
	if strings.Contains(plain, "Final") || strings.Contains(plain, "<title>") {
		t.Error("plain render should omit labels and title")
	}
}

func TestRenderSkipsUnpositionedMatches(t *testing.T) {
	rounds := [][]bracket.Match{{testMatch("m1", 118, 254)}}
	l := testLayout(rounds)
	l.Positions = append(l.Positions, layout.Position{MatchID: "ghost", X: 0, Y: 0})

	out := string(Render(rounds, l))
	if strings.Contains(out, "ghost") {
		t.Error("unknown match id should be skipped")
	}
}
