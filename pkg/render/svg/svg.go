// Package svg renders computed bracket layouts as self-contained SVG
// documents: round labels, match boxes with team labels, and the elbow
// connectors joining each pair of matches to its successor.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/layout"
)

// Visual constants for match boxes. Connector styling comes from the
// layout package, which bakes it into the paths.
const (
	boxFill       = "#ffffff"
	boxStroke     = "#cbd5e1"
	boxRadius     = 6.0
	winnerFill    = "#f0fdf4"
	labelColor    = "#475569"
	teamColor     = "#0f172a"
	scoreColor    = "#64748b"
	fontFamily    = "Helvetica, Arial, sans-serif"
	allianceInset = 10.0
)

type Option func(*renderer)

type renderer struct {
	roundLabels bool
	scores      bool
	title       string
	background  string
}

// WithRoundLabels enables the round name band above the bracket.
func WithRoundLabels() Option { return func(r *renderer) { r.roundLabels = true } }

// WithScores includes alliance scores in completed match boxes.
func WithScores() Option { return func(r *renderer) { r.scores = true } }

// WithTitle sets the SVG document title.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithBackground sets a background fill; default is transparent.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// Render produces the SVG document for a computed layout. The rounds
// must be the same grouping the layout was computed from; matches
// without a position (filtered during layout) are skipped.
func Render(rounds [][]bracket.Match, l layout.Layout, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	matches := matchIndex(rounds)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Container.Width, l.Container.Height, l.Container.Width, l.Container.Height)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	if r.roundLabels {
		renderRoundLabels(&buf, rounds, l)
	}

	// Bracket content is drawn in design coordinates inside a single
	// scaled and translated group; the scaling result supplies the
	// transform.
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f) scale(%.4f)">`+"\n",
		l.Scaling.OffsetX, l.Scaling.OffsetY, l.Scaling.ScaleFactor)

	for _, c := range l.Connections {
		fmt.Fprintf(&buf, `    <path d=%q stroke=%q stroke-width="%.1f" fill=%q/>`+"\n",
			c.Path.D, c.Path.Stroke, c.Path.StrokeWidth, c.Path.Fill)
	}

	for _, p := range l.Positions {
		m, ok := matches[p.MatchID]
		if !ok {
			continue
		}
		renderMatch(&buf, &r, m, p)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRoundLabels(buf *bytes.Buffer, rounds [][]bracket.Match, l layout.Layout) {
	names := bracket.RoundNames(len(rounds))
	for i, name := range names {
		centerX := l.Scaling.OffsetX +
			l.Scaling.ScaleFactor*(float64(i)*(l.Dimensions.RoundWidth+l.Dimensions.RoundGap)+l.Dimensions.RoundWidth/2)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family=%q font-size="13" font-weight="600" fill=%q>%s</text>`+"\n",
			centerX, layout.RoundLabelHeight/2+5, fontFamily, labelColor, escape(name))
	}
}

func renderMatch(buf *bytes.Buffer, r *renderer, m bracket.Match, p layout.Position) {
	fill := boxFill
	if m.Status == bracket.StatusCompleted {
		fill = winnerFill
	}

	fmt.Fprintf(buf, `    <g id="match-%s">`+"\n", escape(m.ID))
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill=%q stroke=%q stroke-width="1"/>`+"\n",
		p.X, p.Y, p.Width, p.Height, boxRadius, fill, boxStroke)

	teams := bracket.TeamLabels(m)
	redY := p.Y + p.Height*0.38
	blueY := p.Y + p.Height*0.78

	renderAlliance(buf, r, m, teams.Red, bracket.ColorRed, p.X+allianceInset, p.X+p.Width-allianceInset, redY)
	renderAlliance(buf, r, m, teams.Blue, bracket.ColorBlue, p.X+allianceInset, p.X+p.Width-allianceInset, blueY)

	buf.WriteString("    </g>\n")
}

func renderAlliance(buf *bytes.Buffer, r *renderer, m bracket.Match, labels []string, color string, x, scoreX, y float64) {
	weight := "400"
	if strings.EqualFold(m.WinningAlliance, color) {
		weight = "700"
	}

	fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-family=%q font-size="%.0f" font-weight=%q fill=%q>%s</text>`+"\n",
		x, y, fontFamily, layout.DesignFontSize, weight, teamColor, escape(strings.Join(labels, ", ")))

	if r.scores && m.Status == bracket.StatusCompleted {
		score := m.RedScore
		if strings.EqualFold(color, bracket.ColorBlue) {
			score = m.BlueScore
		}
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="end" font-family=%q font-size="%.0f" fill=%q>%d</text>`+"\n",
			scoreX, y, fontFamily, layout.DesignFontSize, scoreColor, score)
	}
}

// matchIndex maps match ids to their match for position lookups.
func matchIndex(rounds [][]bracket.Match) map[string]bracket.Match {
	index := make(map[string]bracket.Match)
	for _, round := range rounds {
		for _, m := range round {
			index[m.ID] = m
		}
	}
	return index
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
