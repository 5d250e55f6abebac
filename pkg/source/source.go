// Package source loads raw match records from external systems.
//
// Sources return [bracket.RawMatch] values deliberately: everything a
// source produces is untrusted until it passes through the bracket
// package's validation. The file subpackage reads JSON exports; the
// mongo subpackage reads live tournament databases.
package source

import (
	"context"

	"github.com/stageside/bracketeer/pkg/bracket"
)

// Source yields raw match records for one tournament.
type Source interface {
	// Matches returns every raw match record the source holds.
	Matches(ctx context.Context) ([]*bracket.RawMatch, error)

	// Name identifies the source in logs and pipeline stats.
	Name() string
}
