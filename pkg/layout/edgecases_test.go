package layout

import (
	"strings"
	"testing"

	"github.com/stageside/bracketeer/pkg/bracket"
)

func TestEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		rounds      [][]bracket.Match
		container   Size
		wantValid   bool
		wantWarning string
	}{
		{
			name:        "no rounds",
			rounds:      [][]bracket.Match{},
			container:   Size{Width: 800, Height: 600},
			wantValid:   false,
			wantWarning: "No rounds available for display",
		},
		{
			name:        "all rounds empty",
			rounds:      [][]bracket.Match{{}, {}},
			container:   Size{Width: 800, Height: 600},
			wantValid:   false,
			wantWarning: "All rounds are empty",
		},
		{
			name:        "tiny container",
			rounds:      testRounds(2, 1),
			container:   Size{Width: 100, Height: 50},
			wantValid:   true,
			wantWarning: "Container dimensions are very small (100x50)",
		},
		{
			name:        "single match",
			rounds:      testRounds(1),
			container:   Size{Width: 800, Height: 600},
			wantValid:   true,
			wantWarning: "Bracket contains a single match",
		},
		{
			name:        "large tournament",
			rounds:      testRounds(129),
			container:   Size{Width: 800, Height: 600},
			wantValid:   true,
			wantWarning: "Large tournament (129 matches)",
		},
		{
			name:      "healthy bracket",
			rounds:    testRounds(4, 2, 1),
			container: Size{Width: 1200, Height: 800},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EdgeCases(tt.rounds, tt.container)
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}
			if tt.wantWarning == "" {
				if len(result.Warnings) != 0 {
					t.Errorf("Warnings = %v, want none", result.Warnings)
				}
				return
			}
			found := false
			for _, w := range result.Warnings {
				if strings.Contains(w, tt.wantWarning) {
					found = true
				}
			}
			if !found {
				t.Errorf("Warnings = %v, want one containing %q", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestEdgeCasesTinyContainerStillRenders(t *testing.T) {
	// Small containers degrade with a warning; they never block layout.
	result := EdgeCases(testRounds(1), Size{Width: 100, Height: 50})
	if !result.Valid {
		t.Fatal("Valid = false, want true")
	}
	if len(result.Warnings) != 2 {
		t.Errorf("Warnings = %v, want small-container and single-match", result.Warnings)
	}
}
