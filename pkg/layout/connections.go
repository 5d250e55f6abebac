package layout

import (
	"fmt"

	"github.com/stageside/bracketeer/pkg/bracket"
)

// Default connector stroke attributes.
const (
	ConnectorStroke      = "#64748b"
	ConnectorStrokeWidth = 2.0
	ConnectorFill        = "none"
)

// Path is a ready-to-render SVG path with its stroke attributes.
type Path struct {
	D           string  `json:"d" bson:"d"`
	Stroke      string  `json:"stroke" bson:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" bson:"stroke_width"`
	Fill        string  `json:"fill" bson:"fill"`
}

// Connection joins two child matches to their parent match. Connections
// exist only for rounds two onward, and only when both sources have
// resolved positions.
type Connection struct {
	FromMatches [2]string `json:"fromMatches" bson:"from_matches"`
	ToMatch     string    `json:"toMatch" bson:"to_match"`
	Path        Path      `json:"path" bson:"path"`
	RoundIndex  int       `json:"roundIndex" bson:"round_index"`
}

// ConnectionPath builds the elbow connector joining two source match
// boxes to their target: a horizontal segment from each source's right
// edge to a shared vertical line at source1.right + roundGap/2, the
// vertical line spanning the two source centers, and a final segment
// from the vertical midpoint to the target's left-edge center. Purely
// geometric; assumes a binary bracket with exactly two sources.
func ConnectionPath(source1, source2, target Position, roundGap float64) Path {
	junctionX := source1.Right() + roundGap/2
	y1 := source1.CenterY()
	y2 := source2.CenterY()
	midY := (y1 + y2) / 2

	d := fmt.Sprintf("M %s %s H %s M %s %s H %s M %s %s V %s M %s %s L %s %s",
		f(source1.Right()), f(y1), f(junctionX),
		f(source2.Right()), f(y2), f(junctionX),
		f(junctionX), f(y1), f(y2),
		f(junctionX), f(midY), f(target.X), f(target.CenterY()))

	return Path{
		D:           d,
		Stroke:      ConnectorStroke,
		StrokeWidth: ConnectorStrokeWidth,
		Fill:        ConnectorFill,
	}
}

// BuildConnections derives every renderable connector for the rounds.
// Match i of round r connects from matches 2i and 2i+1 of round r-1;
// pairs with a missing source position (byes, partially computed state)
// are skipped rather than guessed.
func BuildConnections(rounds [][]bracket.Match, positions []Position, dims Dimensions) []Connection {
	if len(rounds) < 2 {
		return []Connection{}
	}

	index := PositionIndex(positions)
	connections := []Connection{}

	for roundIndex := 1; roundIndex < len(rounds); roundIndex++ {
		prev := rounds[roundIndex-1]
		for matchIndex, target := range rounds[roundIndex] {
			si1, si2 := matchIndex*2, matchIndex*2+1
			if si2 >= len(prev) {
				continue
			}

			p1, ok1 := index[prev[si1].ID]
			p2, ok2 := index[prev[si2].ID]
			pt, okT := index[target.ID]
			if !ok1 || !ok2 || !okT {
				continue
			}

			connections = append(connections, Connection{
				FromMatches: [2]string{prev[si1].ID, prev[si2].ID},
				ToMatch:     target.ID,
				Path:        ConnectionPath(p1, p2, pt, dims.RoundGap),
				RoundIndex:  roundIndex,
			})
		}
	}
	return connections
}

// f formats a coordinate with one decimal place, trimming float noise
// out of path strings.
func f(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
