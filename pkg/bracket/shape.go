package bracket

// IsSingleElimination reports whether the rounds form a single-
// elimination shape: every round holds either exactly half of the
// previous round or half minus one. The minus-one tolerance accommodates
// brackets where a bye advances a competitor without a rendered match.
// Single rounds and empty inputs do not qualify.
func IsSingleElimination(rounds [][]Match) bool {
	if len(rounds) < 2 {
		return false
	}
	for i := 1; i < len(rounds); i++ {
		prev, curr := len(rounds[i-1]), len(rounds[i])
		if curr == 0 {
			return false
		}
		half := (prev + 1) / 2
		if curr != half && curr != half-1 {
			return false
		}
	}
	return true
}
