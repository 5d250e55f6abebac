// Package pkg provides the core libraries for Bracketeer tournament
// bracket visualization.
//
// # Overview
//
// Bracketeer turns raw playoff match records into laid-out, rendered
// single-elimination bracket diagrams. The pkg directory is organized
// into four main areas:
//
//  1. [bracket] - Domain logic (match validation, round organization)
//  2. [layout] - Geometry (positions, scaling, connection paths)
//  3. [render] - Visualization (SVG, Graphviz, PDF/PNG conversion)
//  4. [pipeline] - Orchestration (validate → organize → layout → render)
//
// # Architecture
//
// The typical data flow through Bracketeer:
//
//	Match Records (file / MongoDB / HTTP API)
//	         ↓
//	    [bracket] package (validate + organize into rounds)
//	         ↓
//	    [layout] package (positions, scaling, connections)
//	         ↓
//	    [render] package (SVG / DOT / PDF / PNG output)
//
// # Quick Start
//
// Validate matches and render a bracket:
//
//	import (
//	    "context"
//	    "github.com/stageside/bracketeer/pkg/pipeline"
//	    "github.com/stageside/bracketeer/pkg/source/file"
//	)
//
//	src := file.New("matches.json")
//	matches, _ := src.Matches(context.Background())
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Matches: matches,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// ## Domain Logic
//
// [bracket] - Match record validation and round organization. Parses raw
// match records, checks structural invariants (slot collisions, round
// numbering, winner/score consistency), and groups matches into ordered
// rounds with memoized derived values.
//
// [layout] - Bracket geometry. Computes the canvas position of every
// match, cascades scale reductions until the bracket fits the requested
// dimensions, and generates the elbow connection paths between
// consecutive rounds.
//
// ## Visualization
//
// [render] - Format conversion utilities (SVG to PDF/PNG via
// rsvg-convert) plus two renderers:
//
//   - [render/svg]: self-contained bracket SVG documents
//   - [render/dot]: Graphviz tree diagrams for structure debugging
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (validate → organize →
// layout → render) used by the CLI and the HTTP server. Ensures
// consistent behavior across all entry points, with content-addressed
// caching of layouts and rendered artifacts.
//
// [cache] - Byte cache backends: file (CLI), Redis (server), and null
// (tests and --no-cache). Keys are derived from input hashes so stale
// entries are never served.
//
// [source] - Match record sources: local JSON files, MongoDB
// collections, and remote HTTP APIs. All implement [source.Source].
//
// [config] - TOML configuration with environment overrides for the
// server, cache, and default layout geometry.
//
// [errors] - Structured errors with stable machine-readable codes and
// user-facing messages.
//
// [observability] - Pluggable hook interfaces for cache, pipeline, and
// HTTP instrumentation. Defaults to no-ops.
//
// [httputil] - Retry helpers for remote sources.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example         # Examples only
//
// [bracket]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/bracket
// [layout]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/layout
// [render]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/cache
// [source]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/source
// [source.Source]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/source#Source
// [config]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/config
// [errors]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/stageside/bracketeer/pkg/httputil
package pkg
