package bracket

import (
	"encoding/json"
	"strconv"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Match statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Alliance colors.
const (
	ColorRed  = "RED"
	ColorBlue = "BLUE"
)

// Winning alliance values. An empty string means the match is undecided.
const (
	WinnerRed  = "RED"
	WinnerBlue = "BLUE"
	WinnerTie  = "TIE"
)

// ValidStatuses is the set of recognized match statuses.
var ValidStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ValidColors is the set of recognized alliance colors.
var ValidColors = map[string]bool{
	ColorRed:  true,
	ColorBlue: true,
}

// ValidWinners is the set of recognized winning-alliance values.
var ValidWinners = map[string]bool{
	WinnerRed:  true,
	WinnerBlue: true,
	WinnerTie:  true,
}

// TBD is the placeholder shown for any team that is not yet known.
const TBD = "TBD"

// =============================================================================
// RawMatch - Untrusted Input
// =============================================================================

// RawMatch is an untrusted match record as delivered by a match-listing
// API. Every field is optional and may be malformed; use [ValidateMatch]
// to obtain structured diagnostics and [SafeMatch] to convert it into a
// guaranteed-usable [Match].
type RawMatch struct {
	ID string `json:"id" bson:"id"`

	// MatchNumber arrives as an int or a numeric string upstream.
	// After JSON decoding it is nil, float64, or string.
	MatchNumber any `json:"matchNumber" bson:"match_number"`

	RoundNumber     *int           `json:"roundNumber" bson:"round_number"`
	BracketSlot     *int           `json:"bracketSlot" bson:"bracket_slot"`
	Status          string         `json:"status" bson:"status"`
	WinningAlliance string         `json:"winningAlliance" bson:"winning_alliance"`
	Alliances       []*RawAlliance `json:"-" bson:"alliances"`
	ScheduledTime   string         `json:"scheduledTime" bson:"scheduled_time"`
	RedScore        int            `json:"redScore" bson:"red_score"`
	BlueScore       int            `json:"blueScore" bson:"blue_score"`

	// alliancesPresent records whether the alliances key appeared in the
	// source document; alliancesMalformed records that it appeared but was
	// not an array. The validator reports the latter as a structural error.
	alliancesPresent   bool
	alliancesMalformed bool
}

// RawAlliance is an untrusted alliance entry within a RawMatch.
type RawAlliance struct {
	Color         string             `json:"color" bson:"color"`
	TeamAlliances []*RawTeamAlliance `json:"-" bson:"team_alliances"`

	teamsPresent   bool
	teamsMalformed bool
}

// RawTeamAlliance links a team to an alliance slot.
type RawTeamAlliance struct {
	TeamID string `json:"teamId" bson:"team_id"`
	Team   *Team  `json:"team,omitempty" bson:"team,omitempty"`
}

// Team carries optional display information for a registered team.
type Team struct {
	TeamNumber int    `json:"teamNumber,omitempty" bson:"team_number,omitempty"`
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
}

// SetAlliances assigns alliances to a programmatically built RawMatch.
func (m *RawMatch) SetAlliances(alliances []*RawAlliance) {
	m.Alliances = alliances
	m.alliancesPresent = alliances != nil
	m.alliancesMalformed = false
}

// SetTeamAlliances assigns team entries to a programmatically built RawAlliance.
func (a *RawAlliance) SetTeamAlliances(teams []*RawTeamAlliance) {
	a.TeamAlliances = teams
	a.teamsPresent = teams != nil
	a.teamsMalformed = false
}

// UnmarshalJSON decodes a RawMatch while tolerating a malformed alliances
// value. A non-array alliances field is recorded rather than rejected, so
// the validator can surface it as a structural error without aborting the
// decode of an otherwise usable record.
func (m *RawMatch) UnmarshalJSON(data []byte) error {
	type alias RawMatch
	aux := struct {
		*alias
		Alliances json.RawMessage `json:"alliances"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Alliances) == 0 || string(aux.Alliances) == "null" {
		return nil
	}
	m.alliancesPresent = true

	var alliances []*RawAlliance
	if err := json.Unmarshal(aux.Alliances, &alliances); err != nil {
		m.alliancesMalformed = true
		return nil
	}
	m.Alliances = alliances
	return nil
}

// UnmarshalJSON decodes a RawAlliance, tolerating a malformed
// teamAlliances value the same way RawMatch tolerates alliances.
func (a *RawAlliance) UnmarshalJSON(data []byte) error {
	type alias RawAlliance
	aux := struct {
		*alias
		TeamAlliances json.RawMessage `json:"teamAlliances"`
	}{alias: (*alias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.TeamAlliances) == 0 || string(aux.TeamAlliances) == "null" {
		return nil
	}
	a.teamsPresent = true

	var teams []*RawTeamAlliance
	if err := json.Unmarshal(aux.TeamAlliances, &teams); err != nil {
		a.teamsMalformed = true
		return nil
	}
	a.TeamAlliances = teams
	return nil
}

// =============================================================================
// Match - Validated Record
// =============================================================================

// Match is a validated match record. Instances are produced by
// [SafeMatch] or [FixStructure]; all structural invariants hold:
// the ID is non-empty and the alliances slice contains no nil entries.
type Match struct {
	ID              string     `json:"id" bson:"id"`
	MatchNumber     string     `json:"matchNumber" bson:"match_number"`
	RoundNumber     *int       `json:"roundNumber" bson:"round_number"`
	BracketSlot     int        `json:"bracketSlot" bson:"bracket_slot"`
	Status          string     `json:"status" bson:"status"`
	WinningAlliance string     `json:"winningAlliance,omitempty" bson:"winning_alliance,omitempty"`
	Alliances       []Alliance `json:"alliances" bson:"alliances"`
	ScheduledTime   string     `json:"scheduledTime" bson:"scheduled_time"`
	RedScore        int        `json:"redScore" bson:"red_score"`
	BlueScore       int        `json:"blueScore" bson:"blue_score"`
}

// Alliance is a validated alliance within a Match.
type Alliance struct {
	Color         string         `json:"color" bson:"color"`
	TeamAlliances []TeamAlliance `json:"teamAlliances" bson:"team_alliances"`
}

// TeamAlliance is a validated team slot within an Alliance.
type TeamAlliance struct {
	TeamID string `json:"teamId" bson:"team_id"`
	Team   *Team  `json:"team,omitempty" bson:"team,omitempty"`
}

// Round returns the match's round number and whether it is set.
func (m Match) Round() (int, bool) {
	if m.RoundNumber == nil {
		return 0, false
	}
	return *m.RoundNumber, true
}

// =============================================================================
// TeamInfo - Safe Display Strings
// =============================================================================

// TeamInfo holds display strings for each alliance side, guaranteed
// non-empty. See [SafeTeamInfo].
type TeamInfo struct {
	Red  []string `json:"red"`
	Blue []string `json:"blue"`
}

// =============================================================================
// ValidationResult
// =============================================================================

// ValidationResult reports the outcome of validating one or more match
// records. Valid is true iff Errors is empty; warnings are informational
// and never invalidate a record.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// parseMatchNumber coerces a match number of any upstream shape (int,
// float64 from JSON, int32 from BSON, or numeric string) to an int.
// Non-numeric values coerce to 0 so they sort first rather than failing.
func parseMatchNumber(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// matchNumberString renders a match number for display. Missing values
// render as the TBD placeholder.
func matchNumberString(v any) string {
	switch n := v.(type) {
	case nil:
		return TBD
	case string:
		return n
	case float64:
		return strconv.Itoa(int(n))
	case int:
		return strconv.Itoa(n)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	}
	return TBD
}

// matchNumberValue parses the display form stored on a validated Match.
func matchNumberValue(s string) int {
	if parsed, err := strconv.Atoi(s); err == nil {
		return parsed
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
