package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Matches: []*bracket.RawMatch{}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("container = %vx%v, want %vx%v", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.MinScale != layout.MinScaleFactor {
		t.Errorf("MinScale = %v, want %v", opts.MinScale, layout.MinScaleFactor)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Source != "inline" {
		t.Errorf("Source = %q, want inline", opts.Source)
	}
}

func TestOptionsValidation(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("missing matches should fail")
	}

	opts = Options{Matches: []*bracket.RawMatch{}, Width: -10}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("negative width should fail")
	}

	opts = Options{Matches: []*bracket.RawMatch{}, Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("unsupported format should fail")
	}
}

func intp(v int) *int { return &v }

func rawBracket() []*bracket.RawMatch {
	mk := func(id string, number, round, slot int) *bracket.RawMatch {
		m := &bracket.RawMatch{
			ID:          id,
			MatchNumber: number,
			RoundNumber: intp(round),
			BracketSlot: intp(slot),
			Status:      bracket.StatusCompleted,
		}
		red := &bracket.RawAlliance{Color: bracket.ColorRed}
		red.SetTeamAlliances([]*bracket.RawTeamAlliance{{TeamID: "t1"}})
		blue := &bracket.RawAlliance{Color: bracket.ColorBlue}
		blue.SetTeamAlliances([]*bracket.RawTeamAlliance{{TeamID: "t2"}})
		m.SetAlliances([]*bracket.RawAlliance{red, blue})
		return m
	}
	return []*bracket.RawMatch{
		mk("m1", 1, 1, 0),
		mk("m2", 2, 1, 1),
		mk("m3", 3, 2, 0),
	}
}

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestExecute(t *testing.T) {
	runner := testRunner(nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Matches: rawBracket(),
		Formats: []string{"svg", "dot", "json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !result.Validation.Valid {
		t.Errorf("validation errors: %v", result.Validation.Errors)
	}
	if result.Stats.MatchCount != 3 || result.Stats.RoundCount != 2 {
		t.Errorf("stats = %d matches / %d rounds, want 3/2", result.Stats.MatchCount, result.Stats.RoundCount)
	}
	if !result.Layout.SingleElimination {
		t.Error("SingleElimination = false, want true")
	}
	if len(result.Layout.Positions) != 3 || len(result.Layout.Connections) != 1 {
		t.Errorf("layout = %d positions / %d connections, want 3/1",
			len(result.Layout.Positions), len(result.Layout.Connections))
	}
	if result.LayoutHash == "" {
		t.Error("LayoutHash is empty")
	}

	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "digraph bracket") {
		t.Error("dot artifact missing")
	}
	if !strings.Contains(string(result.Artifacts["json"]), `"positions"`) {
		t.Error("json artifact missing")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := testRunner(fc)
	defer runner.Close()

	opts := Options{Matches: rawBracket(), Formats: []string{"svg", "json"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), Options{Matches: rawBracket(), Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}

	// Refresh bypasses the cache.
	third, err := runner.Execute(context.Background(), Options{Matches: rawBracket(), Formats: []string{"svg", "json"}, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

// brokenCache simulates an unreachable backend: every operation fails
// with a backend error.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("%w: get %s", cache.ErrNetwork, key)
}

func (brokenCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return fmt.Errorf("%w: set %s", cache.ErrNetwork, key)
}

func (brokenCache) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("%w: delete %s", cache.ErrNetwork, key)
}

func (brokenCache) Close() error { return nil }

func TestExecuteSurvivesCacheFailure(t *testing.T) {
	runner := testRunner(brokenCache{})
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Matches: rawBracket(),
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatalf("Execute with failing cache: %v", err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("cache info = %+v, want misses", result.CacheInfo)
	}
	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
}

func TestExecuteEmptyBracket(t *testing.T) {
	runner := testRunner(nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Matches: []*bracket.RawMatch{}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.EdgeCases.Valid {
		t.Error("empty bracket should be flagged as nothing to lay out")
	}
	if len(result.Artifacts) != 0 {
		t.Errorf("artifacts = %v, want none", result.Artifacts)
	}
}

func TestValidateDropsBadRecords(t *testing.T) {
	runner := testRunner(nil)
	defer runner.Close()

	matches := append(rawBracket(), &bracket.RawMatch{}) // no ID
	got, validation, err := runner.Validate(context.Background(), Options{Matches: matches})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("matches = %d, want 3 (bad record dropped)", len(got))
	}
	if validation.Valid {
		t.Error("validation should report the bad record")
	}
}
