// Package cli implements the bracketeer command-line interface.
//
// This package provides commands for validating tournament match records,
// computing bracket layouts, rendering them as visualizations, serving the
// HTTP API, and managing the artifact cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check raw match records and report diagnostics
//   - layout: Compute the bracket layout and save it as JSON
//   - render: Generate SVG, PNG, PDF, or DOT visualizations
//   - visualize: Render from a previously computed layout
//   - inspect: Browse a bracket interactively in the terminal
//   - serve: Run the HTTP API server
//   - cache: Manage the layout and artifact cache
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/buildinfo"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/pipeline"
	"github.com/stageside/bracketeer/pkg/source"
	filesource "github.com/stageside/bracketeer/pkg/source/file"
	"github.com/stageside/bracketeer/pkg/source/httpapi"
	mongosource "github.com/stageside/bracketeer/pkg/source/mongo"
)

// appName is the application name used for directories and display.
const appName = "bracketeer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bracketeer lays out single-elimination tournament brackets",
		Long:         `Bracketeer is a CLI tool for validating tournament match records and laying them out as single-elimination bracket visualizations, with connector routing and automatic scaling to the target viewport.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Match Sources
// =============================================================================

// sourceFlags holds the remote source flags shared by the input commands.
type sourceFlags struct {
	uri        string
	database   string
	collection string
	apiURL     string
}

// register adds the remote source flags to cmd.
func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.uri, "mongo-uri", "", "MongoDB connection string (reads matches from MongoDB instead of a file)")
	cmd.Flags().StringVar(&f.database, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&f.collection, "mongo-collection", "", "MongoDB collection name")
	cmd.Flags().StringVar(&f.apiURL, "api-url", "", "tournament API endpoint returning match records as JSON")
}

// set reports whether a remote source was requested.
func (f *sourceFlags) set() bool {
	return f.uri != "" || f.apiURL != ""
}

// openSource builds the match source from the positional file argument or
// the remote flags. The caller must call the returned cleanup function.
func (c *CLI) openSource(ctx context.Context, args []string, remote sourceFlags) (source.Source, func(), error) {
	if remote.apiURL != "" {
		src, err := httpapi.New(remote.apiURL, nil)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}

	if remote.uri != "" {
		src, err := mongosource.New(ctx, mongosource.Config{
			URI:        remote.uri,
			Database:   remote.database,
			Collection: remote.collection,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	}

	if len(args) == 0 {
		return nil, nil, fmt.Errorf("a matches file is required unless --mongo-uri or --api-url is set")
	}
	return filesource.New(args[0]), func() {}, nil
}

// loadMatches fetches the raw matches from the configured source.
func (c *CLI) loadMatches(ctx context.Context, args []string, remote sourceFlags) ([]*bracket.RawMatch, string, error) {
	src, cleanup, err := c.openSource(ctx, args, remote)
	if err != nil {
		return nil, "", err
	}
	defer cleanup()

	matches, err := src.Matches(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load matches from %s: %w", src.Name(), err)
	}
	return matches, src.Name(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bracketeer/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags holds the geometry flags shared by layout-producing commands.
type layoutFlags struct {
	width            float64
	height           float64
	roundWidth       float64
	roundGap         float64
	matchHeight      float64
	matchVerticalGap float64
	minScale         float64
}

// register adds the layout flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "container width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "container height in pixels")
	cmd.Flags().Float64Var(&f.roundWidth, "round-width", 0, "round column width (default: design resolution)")
	cmd.Flags().Float64Var(&f.roundGap, "round-gap", 0, "horizontal gap between rounds")
	cmd.Flags().Float64Var(&f.matchHeight, "match-height", 0, "match box height")
	cmd.Flags().Float64Var(&f.matchVerticalGap, "match-gap", 0, "vertical gap between matches")
	cmd.Flags().Float64Var(&f.minScale, "min-scale", 0, "minimum scale factor")
}

// apply copies the flag values onto opts.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	opts.Width = f.width
	opts.Height = f.height
	opts.RoundWidth = f.roundWidth
	opts.RoundGap = f.roundGap
	opts.MatchHeight = f.matchHeight
	opts.MatchVerticalGap = f.matchVerticalGap
	opts.MinScale = f.minScale
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
