package bracket

import (
	"encoding/json"
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func rawMatch(id string, round int, number any) *RawMatch {
	return &RawMatch{
		ID:          id,
		MatchNumber: number,
		RoundNumber: intp(round),
		Status:      StatusPending,
	}
}

func TestValidateMatchNil(t *testing.T) {
	result := ValidateMatch(nil)
	if result.Valid {
		t.Error("nil match should be invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "match is nil" {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestValidateMatchAccumulates(t *testing.T) {
	m := &RawMatch{
		Status:          "WEIRD",
		WinningAlliance: "GREEN",
	}
	result := ValidateMatch(m)

	if result.Valid {
		t.Error("match without ID should be invalid")
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want exactly the missing-ID error", result.Errors)
	}
	// Missing match number, unknown status, unknown winner: all warnings.
	if len(result.Warnings) != 3 {
		t.Errorf("Warnings = %v, want 3", result.Warnings)
	}
}

func TestValidateMatchSuspiciousID(t *testing.T) {
	// IDs flow into cache keys and artifact file names; traversal-shaped
	// ids warn but do not invalidate the record.
	for _, id := range []string{"../evil", "a/b", "m1\x00"} {
		result := ValidateMatch(rawMatch(id, 1, 1))
		if !result.Valid {
			t.Errorf("ValidateMatch(%q) invalid, want warning only: %v", id, result.Errors)
		}
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "unexpected shape") {
				found = true
			}
		}
		if !found {
			t.Errorf("ValidateMatch(%q) missing shape warning: %v", id, result.Warnings)
		}
	}

	if result := ValidateMatch(rawMatch("sf1.m2", 1, 1)); len(result.Warnings) != 0 {
		t.Errorf("well-formed id should not warn: %v", result.Warnings)
	}
}

func TestValidateMatchZeroMatchNumber(t *testing.T) {
	m := rawMatch("m1", 1, 0)
	result := ValidateMatch(m)
	for _, w := range result.Warnings {
		if strings.Contains(w, "match number") {
			t.Errorf("match number 0 should not warn: %v", result.Warnings)
		}
	}
}

func TestValidateMatchAlliances(t *testing.T) {
	m := rawMatch("m1", 1, 1)
	red := &RawAlliance{Color: ColorRed}
	red.SetTeamAlliances([]*RawTeamAlliance{{TeamID: "t1"}})
	m.SetAlliances([]*RawAlliance{red, nil, {Color: "GREEN"}})

	result := ValidateMatch(m)
	if !result.Valid {
		t.Fatalf("alliance problems are warnings, not errors: %v", result.Errors)
	}

	var nilWarn, colorWarn, teamsWarn bool
	for _, w := range result.Warnings {
		switch {
		case strings.Contains(w, "is nil"):
			nilWarn = true
		case strings.Contains(w, "unrecognized color"):
			colorWarn = true
		case strings.Contains(w, "teamAlliances"):
			teamsWarn = true
		}
	}
	if !nilWarn || !colorWarn || !teamsWarn {
		t.Errorf("missing expected warnings: %v", result.Warnings)
	}
}

func TestValidateMatchMalformedAlliancesJSON(t *testing.T) {
	var m RawMatch
	if err := json.Unmarshal([]byte(`{"id":"m1","alliances":"nope"}`), &m); err != nil {
		t.Fatalf("decode should tolerate malformed alliances: %v", err)
	}

	result := ValidateMatch(&m)
	if result.Valid {
		t.Error("non-array alliances should be a structural error")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "not an array") {
			found = true
		}
	}
	if !found {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestValidateMatchesNilAndEmpty(t *testing.T) {
	result := ValidateMatches(nil)
	if result.Valid || len(result.Errors) != 1 {
		t.Errorf("nil list: %+v", result)
	}

	result = ValidateMatches([]*RawMatch{})
	if !result.Valid {
		t.Error("empty list should be valid")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("empty list should carry one warning: %v", result.Warnings)
	}
}

func TestValidateMatchesDuplicateIDs(t *testing.T) {
	matches := []*RawMatch{
		rawMatch("m1", 1, 1),
		rawMatch("m2", 1, 2),
		rawMatch("m1", 2, 1),
		rawMatch("m2", 2, 2),
		{RoundNumber: intp(1), MatchNumber: 3}, // empty id: an error, never a duplicate
	}
	result := ValidateMatches(matches)
	if result.Valid {
		t.Error("duplicates should invalidate the list")
	}

	var dupErr string
	for _, e := range result.Errors {
		if strings.Contains(e, "duplicate match IDs") {
			dupErr = e
		}
	}
	if dupErr == "" {
		t.Fatalf("no aggregated duplicate error in %v", result.Errors)
	}
	if !strings.Contains(dupErr, "m1") || !strings.Contains(dupErr, "m2") {
		t.Errorf("aggregated error should list all duplicates: %s", dupErr)
	}
}

func TestValidateMatchesNoDuplicates(t *testing.T) {
	result := ValidateMatches([]*RawMatch{rawMatch("m1", 1, 1), rawMatch("m2", 1, 2)})
	for _, e := range result.Errors {
		if strings.Contains(e, "duplicate") {
			t.Errorf("unique ids flagged as duplicates: %s", e)
		}
	}
}

func TestValidateMatchesIndexPrefix(t *testing.T) {
	result := ValidateMatches([]*RawMatch{rawMatch("m1", 1, 1), nil})
	found := false
	for _, e := range result.Errors {
		if strings.HasPrefix(e, "match 1:") {
			found = true
		}
	}
	if !found {
		t.Errorf("element errors should be index-prefixed: %v", result.Errors)
	}
}
