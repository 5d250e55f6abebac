// Package dot renders brackets as Graphviz tree diagrams.
//
// The output is mainly a debugging aid: it shows bracket structure
// (which matches feed which) without any of the geometric layout the
// svg package performs.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/render"
)

// Options configures bracket diagram rendering.
type Options struct {
	// Detailed includes team labels and scores in node labels.
	// When false, only the match ID is shown.
	Detailed bool
}

// ToDOT converts bracket rounds to Graphviz DOT format. The resulting
// DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Pending matches are rendered with dashed outlines and grey fill to
// distinguish them from played ones.
func ToDOT(rounds [][]bracket.Match, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph bracket {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, round := range rounds {
		for _, m := range round {
			label := fmtLabel(m, opts.Detailed)
			attrs := fmtAttrs(m, label)
			fmt.Fprintf(&buf, "  %q [%s];\n", m.ID, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for roundIndex := 1; roundIndex < len(rounds); roundIndex++ {
		prev := rounds[roundIndex-1]
		for matchIndex, target := range rounds[roundIndex] {
			for _, si := range []int{matchIndex * 2, matchIndex*2 + 1} {
				if si < len(prev) {
					fmt.Fprintf(&buf, "  %q -> %q;\n", prev[si].ID, target.ID)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(m bracket.Match, detailed bool) string {
	if !detailed {
		return m.ID
	}

	teams := bracket.TeamLabels(m)
	parts := []string{
		fmt.Sprintf("R: %s", strings.Join(teams.Red, ", ")),
		fmt.Sprintf("B: %s", strings.Join(teams.Blue, ", ")),
	}
	if m.Status == bracket.StatusCompleted {
		parts = append(parts, fmt.Sprintf("%d - %d", m.RedScore, m.BlueScore))
	}

	return m.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(m bracket.Match, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if m.Status == bracket.StatusPending {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
