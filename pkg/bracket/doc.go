// Package bracket defines the tournament match data model and the
// validation layer that turns untrusted match records into validated ones.
//
// The package distinguishes between two representations:
//
//   - RawMatch: untrusted input as it arrives from a match-listing API.
//     Fields may be missing, mistyped, or structurally malformed.
//   - Match: a validated record with every invariant guaranteed. Only
//     Match values enter the layout pipeline, so geometry code never
//     needs defensive nil checks.
//
// Conversion happens through [ValidateMatch] and [SafeMatch]. Validation
// accumulates structured errors and warnings instead of failing on the
// first problem; warnings never invalidate a record.
//
// [OrganizeIntoRounds] groups validated matches into per-round slices,
// the shape consumed by the layout package. Grouping is memoized on a
// content fingerprint that is insensitive to input ordering.
package bracket
