// Package layout computes bracket geometry: per-match rectangles,
// parent/child connector paths, and the responsive scaling decision that
// fits a bracket into an arbitrary viewport.
//
// All functions are pure: the same rounds and dimensions always yield
// the same geometry, and diagnostics are returned rather than raised.
// Degenerate inputs (empty rounds, impossible viewports) produce an
// explicit invalid result with an empty renderable set, never NaN or
// negative dimensions.
//
// The entry points mirror the pipeline order: [MatchPositions] places
// matches, [ScaleToFit] runs the scaling cascade, [BuildConnections]
// derives the connector paths, and [EdgeCases] reports the degenerate
// situations a caller may want to surface before rendering.
package layout
