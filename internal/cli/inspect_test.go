package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stageside/bracketeer/pkg/bracket"
)

func testBracketRounds() [][]bracket.Match {
	round1 := []bracket.Match{
		{ID: "m1", Status: bracket.StatusCompleted, RedScore: 3, BlueScore: 1, WinningAlliance: bracket.ColorRed},
		{ID: "m2", Status: bracket.StatusPending},
	}
	round2 := []bracket.Match{
		{ID: "m3", Status: bracket.StatusPending},
	}
	return [][]bracket.Match{round1, round2}
}

func TestBracketModelNavigation(t *testing.T) {
	m := NewBracketModel(testBracketRounds())

	if len(m.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.Rows))
	}

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	next, _ := m.Update(down)
	m = next.(BracketModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(down)
	m = next.(BracketModel)
	next, _ = m.Update(down)
	m = next.(BracketModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, should stop at last row", m.Cursor)
	}

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	next, _ = m.Update(up)
	m = next.(BracketModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", m.Cursor)
	}
}

func TestBracketModelSelection(t *testing.T) {
	m := NewBracketModel(testBracketRounds())

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	next, cmd := m.Update(enter)
	m = next.(BracketModel)

	if m.Selected == nil || m.Selected.ID != "m1" {
		t.Fatalf("selected = %+v, want m1", m.Selected)
	}
	if m.SelectedRound != 0 {
		t.Errorf("selected round = %d, want 0", m.SelectedRound)
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
}

func TestBracketModelView(t *testing.T) {
	m := NewBracketModel(testBracketRounds())
	view := m.View()

	for _, want := range []string{"m1", "m2", "m3", "Semifinals", "Final", "3 - 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
