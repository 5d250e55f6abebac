package bracket

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stageside/bracketeer/pkg/errors"
)

// ValidateMatch checks a single untrusted match record and reports every
// problem it finds. Checks accumulate rather than short-circuiting, so
// one call yields the full picture. A nil match is the one exception:
// it returns immediately with a single error.
func ValidateMatch(m *RawMatch) ValidationResult {
	if m == nil {
		return ValidationResult{
			Valid:    false,
			Errors:   []string{"match is nil"},
			Warnings: []string{},
		}
	}

	var errs, warns []string

	if m.ID == "" {
		errs = append(errs, "match ID is missing")
	} else if err := errors.ValidateMatchID(m.ID); err != nil {
		// IDs end up in cache keys and file names; flag suspicious
		// shapes without rejecting the record.
		warns = append(warns, fmt.Sprintf("match ID %q has an unexpected shape", m.ID))
	}

	if m.MatchNumber == nil {
		warns = append(warns, "match number is missing")
	}

	if !ValidStatuses[m.Status] {
		warns = append(warns, fmt.Sprintf("unrecognized match status %q", m.Status))
	}

	if m.alliancesMalformed {
		errs = append(errs, "alliances is not an array")
	} else if m.alliancesPresent {
		for i, a := range m.Alliances {
			switch {
			case a == nil:
				warns = append(warns, fmt.Sprintf("alliance %d is nil", i))
			default:
				if !ValidColors[a.Color] {
					warns = append(warns, fmt.Sprintf("alliance %d has unrecognized color %q", i, a.Color))
				}
				if a.teamsMalformed || !a.teamsPresent {
					warns = append(warns, fmt.Sprintf("alliance %d has missing or invalid teamAlliances", i))
				}
			}
		}
	}

	if m.WinningAlliance != "" && !ValidWinners[m.WinningAlliance] {
		warns = append(warns, fmt.Sprintf("unrecognized winning alliance %q", m.WinningAlliance))
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   orEmpty(errs),
		Warnings: orEmpty(warns),
	}
}

// ValidateMatches checks a full match list. A nil list fails fast with a
// single error; an empty list is valid but carries a warning. Otherwise
// every element is validated with an index-prefixed message, and the list
// is scanned for duplicate non-empty IDs, which are reported as one
// aggregated error naming every duplicate.
func ValidateMatches(matches []*RawMatch) ValidationResult {
	if matches == nil {
		return ValidationResult{
			Valid:    false,
			Errors:   []string{"matches is not a list"},
			Warnings: []string{},
		}
	}
	if len(matches) == 0 {
		return ValidationResult{
			Valid:    true,
			Errors:   []string{},
			Warnings: []string{"match list is empty"},
		}
	}

	var errs, warns []string

	for i, m := range matches {
		result := ValidateMatch(m)
		for _, e := range result.Errors {
			errs = append(errs, fmt.Sprintf("match %d: %s", i, e))
		}
		for _, w := range result.Warnings {
			warns = append(warns, fmt.Sprintf("match %d: %s", i, w))
		}
	}

	if dups := duplicateIDs(matches); len(dups) > 0 {
		errs = append(errs, fmt.Sprintf("duplicate match IDs: %s", strings.Join(dups, ", ")))
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   orEmpty(errs),
		Warnings: orEmpty(warns),
	}
}

// duplicateIDs returns the sorted set of non-empty IDs that occur more
// than once in the list.
func duplicateIDs(matches []*RawMatch) []string {
	counts := make(map[string]int)
	for _, m := range matches {
		if m != nil && m.ID != "" {
			counts[m.ID]++
		}
	}

	var dups []string
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

// orEmpty normalizes a nil slice to an empty one so serialized results
// always carry arrays rather than nulls.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
