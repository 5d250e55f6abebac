// Package file reads raw match records from JSON exports.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/source"
)

// Source reads matches from a JSON file on disk.
type Source struct {
	path string
}

var _ source.Source = (*Source)(nil)

// New returns a file source for path. The file is read on every
// [Source.Matches] call, not at construction.
func New(path string) *Source {
	return &Source{path: path}
}

// Name implements [source.Source].
func (s *Source) Name() string { return s.path }

// Matches reads and decodes the file.
func (s *Source) Matches(ctx context.Context) ([]*bracket.RawMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	matches, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return matches, nil
}

// ReadJSON decodes raw match records from r.
//
// The input is either a bare JSON array of match objects or an object
// with a "matches" array, the two shapes tournament systems export:
//
//	[{"id": "m1", ...}, {"id": "m2", ...}]
//	{"matches": [{"id": "m1", ...}]}
//
// Decoding is deliberately lenient: per-match structural problems
// (alliances that are not arrays, malformed team lists) are recorded on
// the RawMatch for validation to report, not raised here. ReadJSON only
// fails when the document itself is not valid JSON in one of the two
// accepted shapes. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]*bracket.RawMatch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var matches []*bracket.RawMatch
	if err := json.Unmarshal(data, &matches); err == nil {
		return matches, nil
	}

	var wrapper struct {
		Matches []*bracket.RawMatch `json:"matches"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if wrapper.Matches == nil {
		return nil, fmt.Errorf("decode: document has no matches array")
	}
	return wrapper.Matches, nil
}
