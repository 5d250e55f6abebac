package bracket

import "fmt"

// RoundName returns the display name for round index (0-based) in a
// bracket of totalRounds rounds. The last three rounds get their
// conventional names; earlier rounds are numbered.
func RoundName(index, totalRounds int) string {
	if totalRounds <= 0 || index < 0 || index >= totalRounds {
		return ""
	}

	switch totalRounds - index {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 3:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round %d", index+1)
	}
}

// RoundNames returns the display name for every round.
func RoundNames(totalRounds int) []string {
	names := make([]string, totalRounds)
	for i := range names {
		names[i] = RoundName(i, totalRounds)
	}
	return names
}
