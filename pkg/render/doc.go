// Package render provides visualization rendering for bracket layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms computed
// bracket layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Bracket SVG rendering (in [svg] subpackage)
//   - Graphviz tree diagrams (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the SVG and DOT renderers.
//
//	doc := svg.Render(rounds, lay, opts...)
//	pdf, err := render.ToPDF(doc)
//	png, err := render.ToPNG(doc, 2.0)  // 2x scale
//
// # Bracket SVG
//
// The [svg] subpackage renders a computed layout as a self-contained SVG
// document: round labels, match boxes with team labels, and the elbow
// connectors joining each pair of matches to its successor.
//
// # Graphviz Diagrams
//
// The [dot] subpackage renders the bracket as a directed tree using
// Graphviz, mainly for debugging bracket structure.
//
//	d := dot.ToDOT(rounds, dot.Options{})
//	out, err := dot.RenderSVG(d)
//
// [svg]: github.com/stageside/bracketeer/pkg/render/svg
// [dot]: github.com/stageside/bracketeer/pkg/render/dot
package render
