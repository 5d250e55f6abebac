package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bareArray = `[
  {"id": "m1", "matchNumber": 1, "roundNumber": 1, "status": "COMPLETED",
   "alliances": [{"color": "RED", "teamAlliances": [{"teamId": "t1"}]},
                 {"color": "BLUE", "teamAlliances": [{"teamId": "t2"}]}]},
  {"id": "m2", "matchNumber": "2", "roundNumber": 1, "status": "PENDING"}
]`

func TestReadJSON_BareArray(t *testing.T) {
	matches, err := ReadJSON(strings.NewReader(bareArray))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].ID != "m1" || matches[1].ID != "m2" {
		t.Errorf("ids = %q, %q", matches[0].ID, matches[1].ID)
	}
	if len(matches[0].Alliances) != 2 {
		t.Errorf("alliances = %d, want 2", len(matches[0].Alliances))
	}
}

func TestReadJSON_Wrapper(t *testing.T) {
	matches, err := ReadJSON(strings.NewReader(`{"matches": [{"id": "m1"}]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "m1" {
		t.Errorf("matches = %v", matches)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ReadJSON(strings.NewReader(`{"other": []}`)); err == nil {
		t.Error("expected error for document without matches")
	}
}

func TestReadJSON_MalformedAlliancesSurvive(t *testing.T) {
	// A match with a non-array alliances field still decodes; the
	// structural problem is left for validation to report.
	matches, err := ReadJSON(strings.NewReader(`[{"id": "m1", "alliances": "oops"}]`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")
	if err := os.WriteFile(path, []byte(bareArray), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	if s.Name() != path {
		t.Errorf("Name() = %q, want %q", s.Name(), path)
	}

	matches, err := s.Matches(context.Background())
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("matches = %d, want 2", len(matches))
	}

	if _, err := New(filepath.Join(t.TempDir(), "missing.json")).Matches(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
