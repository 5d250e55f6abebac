package bracket

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stageside/bracketeer/pkg/cache"
)

// OrganizeIntoRounds groups validated matches into per-round slices
// ordered by ascending round number. Matches without a round number are
// dropped; within a round, matches sort by bracket slot, falling back to
// numeric match number on equal slots.
//
// The result is memoized on a fingerprint built from sorted
// id-round-slot tuples, so it is insensitive to input ordering but
// sensitive to any slot or round change. On a memo hit the previously
// computed slice itself is returned, which lets callers detect reuse by
// identity. Empty input short-circuits before any cache write.
func OrganizeIntoRounds(matches []Match, memo *cache.Memo) [][]Match {
	if len(matches) == 0 {
		return [][]Match{}
	}

	key := roundsFingerprint(matches)
	if v, ok := memo.Get(key); ok {
		if rounds, ok := v.([][]Match); ok {
			return rounds
		}
	}

	byRound := make(map[int][]Match)
	for _, m := range matches {
		round, ok := m.Round()
		if !ok {
			continue
		}
		byRound[round] = append(byRound[round], m)
	}
	if len(byRound) == 0 {
		return [][]Match{}
	}

	roundNumbers := make([]int, 0, len(byRound))
	for r := range byRound {
		roundNumbers = append(roundNumbers, r)
	}
	sort.Ints(roundNumbers)

	rounds := make([][]Match, 0, len(roundNumbers))
	for _, r := range roundNumbers {
		round := byRound[r]
		sort.SliceStable(round, func(i, j int) bool {
			if round[i].BracketSlot != round[j].BracketSlot {
				return round[i].BracketSlot < round[j].BracketSlot
			}
			return matchNumberValue(round[i].MatchNumber) < matchNumberValue(round[j].MatchNumber)
		})
		rounds = append(rounds, round)
	}

	memo.Put(key, rounds)
	return rounds
}

// roundsFingerprint builds the order-insensitive memo key for a match
// list: sorted id-round-slot tuples.
func roundsFingerprint(matches []Match) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		round := "nil"
		if r, ok := m.Round(); ok {
			round = fmt.Sprintf("%d", r)
		}
		parts = append(parts, fmt.Sprintf("%s-%s-%d", m.ID, round, m.BracketSlot))
	}
	sort.Strings(parts)
	return "rounds:" + strings.Join(parts, "|")
}

// MaxMatchesInRound returns the size of the largest round. Used by both
// dimension calculation and bracket-shape detection.
func MaxMatchesInRound(rounds [][]Match) int {
	max := 0
	for _, r := range rounds {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// TotalMatches counts matches across all rounds.
func TotalMatches(rounds [][]Match) int {
	total := 0
	for _, r := range rounds {
		total += len(r)
	}
	return total
}
