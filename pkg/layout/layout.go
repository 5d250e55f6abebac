package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is the serialization format for a computed bracket layout. It
// is what the rendering layer consumes and what the pipeline caches:
// per-match rectangles, connector paths, the scaling decision, and the
// geometry parameters the pass was computed with.
type Layout struct {
	// Container is the viewport the layout was computed for.
	Container Size `json:"container" bson:"container"`

	// Content is the unscaled bracket size at design resolution.
	Content Size `json:"content" bson:"content"`

	Dimensions  Dimensions   `json:"dimensions" bson:"dimensions"`
	Positions   []Position   `json:"positions" bson:"positions"`
	Connections []Connection `json:"connections" bson:"connections"`
	Scaling     ScalingResult `json:"scaling" bson:"scaling"`

	// Rounds holds match ids per round, preserving bracket order for
	// renderers that need round grouping without the full match data.
	Rounds [][]string `json:"rounds" bson:"rounds"`

	// Strategy is the advisory scaling classification for the container.
	Strategy Strategy `json:"strategy" bson:"strategy"`

	// SingleElimination records whether the rounds formed a recognized
	// single-elimination shape.
	SingleElimination bool `json:"singleElimination" bson:"single_elimination"`
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that
// the result is renderable.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Positions) == 0 {
		return Layout{}, fmt.Errorf("layout must contain positions")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
