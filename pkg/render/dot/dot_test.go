package dot

import (
	"strings"
	"testing"

	"github.com/stageside/bracketeer/pkg/bracket"
)

func played(id string, red, blue int) bracket.Match {
	return bracket.Match{
		ID:              id,
		Status:          bracket.StatusCompleted,
		WinningAlliance: bracket.WinnerRed,
		RedScore:        3,
		BlueScore:       1,
		Alliances: []bracket.Alliance{
			{Color: bracket.ColorRed, TeamAlliances: []bracket.TeamAlliance{{Team: &bracket.Team{TeamNumber: red}}}},
			{Color: bracket.ColorBlue, TeamAlliances: []bracket.TeamAlliance{{Team: &bracket.Team{TeamNumber: blue}}}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	rounds := [][]bracket.Match{
		{played("m1", 118, 254), played("m2", 148, 1678)},
		{{ID: "m3", Status: bracket.StatusPending}},
	}

	dot := ToDOT(rounds, Options{})

	if !strings.Contains(dot, "digraph bracket") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() output missing rankdir")
	}
	for _, id := range []string{`"m1"`, `"m2"`, `"m3"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `"m1" -> "m3"`) || !strings.Contains(dot, `"m2" -> "m3"`) {
		t.Error("ToDOT() output missing bracket edges")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	rounds := [][]bracket.Match{{played("m1", 118, 254)}}

	dot := ToDOT(rounds, Options{Detailed: true})

	if !strings.Contains(dot, "R: Team 118") {
		t.Error("ToDOT() detailed output missing red alliance")
	}
	if !strings.Contains(dot, "B: Team 254") {
		t.Error("ToDOT() detailed output missing blue alliance")
	}
	if !strings.Contains(dot, "3 - 1") {
		t.Error("ToDOT() detailed output missing score")
	}
}

func TestToDOT_Pending(t *testing.T) {
	rounds := [][]bracket.Match{{{ID: "m1", Status: bracket.StatusPending}}}

	dot := ToDOT(rounds, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() pending match missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() pending match missing lightgrey fill")
	}
}

func TestToDOT_SkipsIncompletePairs(t *testing.T) {
	// A bye: the second source for m2 does not exist; only one edge is
	// emitted.
	rounds := [][]bracket.Match{
		{played("m1", 118, 254)},
		{{ID: "m2", Status: bracket.StatusPending}},
	}

	dot := ToDOT(rounds, Options{})

	if !strings.Contains(dot, `"m1" -> "m2"`) {
		t.Error("ToDOT() missing the existing edge")
	}
	if got := strings.Count(dot, "->"); got != 1 {
		t.Errorf("edge count = %d, want 1", got)
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	label := fmtLabel(bracket.Match{ID: "m1"}, false)
	if label != "m1" {
		t.Errorf("fmtLabel() = %q, want %q", label, "m1")
	}
}
