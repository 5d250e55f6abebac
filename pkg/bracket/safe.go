package bracket

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SafeMatch always returns a usable Match. If the candidate passes
// validation it is converted as-is; otherwise a complete fallback match
// is synthesized and returned alongside the diagnostics, with Fallback
// set so callers can report the substitution.
func SafeMatch(m *RawMatch) (Match, SafeMatchReport) {
	result := ValidateMatch(m)
	if result.Valid {
		return toMatch(m), SafeMatchReport{Validation: result}
	}

	fallback := FallbackMatch("")
	return fallback, SafeMatchReport{
		Validation: result,
		Fallback:   &fallback,
	}
}

// SafeMatchReport describes what SafeMatch did: the validation outcome
// and, when a fallback was substituted, the fallback data itself.
type SafeMatchReport struct {
	Validation ValidationResult `json:"validation"`
	Fallback   *Match           `json:"fallbackData,omitempty"`
}

// FallbackMatch produces a complete, schema-valid placeholder match with
// two TBD alliances. It is used whenever a slot must stay visually
// present despite missing or corrupt data. An empty id generates one.
func FallbackMatch(id string) Match {
	if id == "" {
		id = "fallback-" + uuid.NewString()
	}
	return Match{
		ID:            id,
		MatchNumber:   TBD,
		Status:        StatusPending,
		ScheduledTime: time.Now().UTC().Format(time.RFC3339),
		Alliances: []Alliance{
			{Color: ColorRed, TeamAlliances: []TeamAlliance{{TeamID: TBD}}},
			{Color: ColorBlue, TeamAlliances: []TeamAlliance{{TeamID: TBD}}},
		},
	}
}

// SafeTeamInfo extracts display strings for both alliance sides without
// ever failing. Each side prefers "{number} {name}", then "Team
// {number}", then "Team {teamId}", and defaults to a single TBD entry
// when nothing usable is present. A nil match yields TBD on both sides.
func SafeTeamInfo(m *RawMatch) TeamInfo {
	info := TeamInfo{Red: []string{TBD}, Blue: []string{TBD}}
	if m == nil || m.alliancesMalformed {
		return info
	}

	for _, a := range m.Alliances {
		if a == nil || a.teamsMalformed {
			continue
		}
		teams := teamLabels(a.TeamAlliances)
		if len(teams) == 0 {
			continue
		}
		switch a.Color {
		case ColorRed:
			info.Red = teams
		case ColorBlue:
			info.Blue = teams
		}
	}
	return info
}

// teamLabels builds display strings for the team entries of one alliance.
func teamLabels(teams []*RawTeamAlliance) []string {
	var labels []string
	for _, ta := range teams {
		if ta == nil {
			continue
		}
		labels = append(labels, teamLabel(TeamAlliance{TeamID: ta.TeamID, Team: ta.Team}))
	}
	return labels
}

// teamLabel renders a single team slot for display.
func teamLabel(ta TeamAlliance) string {
	if t := ta.Team; t != nil {
		if t.TeamNumber != 0 && t.Name != "" {
			return fmt.Sprintf("%d %s", t.TeamNumber, t.Name)
		}
		if t.TeamNumber != 0 {
			return fmt.Sprintf("Team %d", t.TeamNumber)
		}
	}
	if ta.TeamID != "" {
		return fmt.Sprintf("Team %s", ta.TeamID)
	}
	return TBD
}

// TeamLabels returns the display strings for a validated match, one list
// per alliance side, with the same fallback chain as [SafeTeamInfo].
func TeamLabels(m Match) TeamInfo {
	info := TeamInfo{Red: []string{TBD}, Blue: []string{TBD}}
	for _, a := range m.Alliances {
		var labels []string
		for _, ta := range a.TeamAlliances {
			labels = append(labels, teamLabel(ta))
		}
		if len(labels) == 0 {
			continue
		}
		switch a.Color {
		case ColorRed:
			info.Red = labels
		case ColorBlue:
			info.Blue = labels
		}
	}
	return info
}

// FixStructure filters out every record that fails validation and sorts
// the survivors into bracket order: round number ascending with missing
// rounds last, ties broken by numeric match number. The result is always
// a usable slice; internal failures yield an empty one rather than
// propagating.
func FixStructure(matches []*RawMatch) []Match {
	fixed := make([]Match, 0, len(matches))
	for _, m := range matches {
		if ValidateMatch(m).Valid {
			fixed = append(fixed, toMatch(m))
		}
	}

	sort.SliceStable(fixed, func(i, j int) bool {
		ri, rj := roundOrLast(fixed[i]), roundOrLast(fixed[j])
		if ri != rj {
			return ri < rj
		}
		return matchNumberValue(fixed[i].MatchNumber) < matchNumberValue(fixed[j].MatchNumber)
	})
	return fixed
}

// roundOrLast maps a missing round number to the maximum int so those
// matches sort after every real round.
func roundOrLast(m Match) int {
	if m.RoundNumber == nil {
		return math.MaxInt
	}
	return *m.RoundNumber
}

// toMatch converts a raw record that already passed validation. Nil
// alliance entries and malformed team lists are dropped; unknown winning
// alliances and statuses are preserved verbatim since validation only
// warned about them.
func toMatch(m *RawMatch) Match {
	out := Match{
		ID:              m.ID,
		MatchNumber:     matchNumberString(m.MatchNumber),
		RoundNumber:     m.RoundNumber,
		Status:          m.Status,
		WinningAlliance: m.WinningAlliance,
		ScheduledTime:   m.ScheduledTime,
		RedScore:        m.RedScore,
		BlueScore:       m.BlueScore,
		Alliances:       []Alliance{},
	}
	if m.BracketSlot != nil {
		out.BracketSlot = *m.BracketSlot
	}

	for _, a := range m.Alliances {
		if a == nil {
			continue
		}
		alliance := Alliance{Color: a.Color, TeamAlliances: []TeamAlliance{}}
		for _, ta := range a.TeamAlliances {
			if ta == nil {
				continue
			}
			alliance.TeamAlliances = append(alliance.TeamAlliances, TeamAlliance{
				TeamID: ta.TeamID,
				Team:   ta.Team,
			})
		}
		out.Alliances = append(out.Alliances, alliance)
	}
	return out
}
