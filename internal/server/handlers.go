package server

import (
	"encoding/json"
	"net/http"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/layout"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// LayoutRequest is the JSON body for POST /api/v1/layout. It mirrors
// the pipeline options; omitted fields take the pipeline defaults.
type LayoutRequest struct {
	Matches []*bracket.RawMatch `json:"matches"`

	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
	RoundWidth       float64 `json:"round_width,omitempty"`
	RoundGap         float64 `json:"round_gap,omitempty"`
	MatchHeight      float64 `json:"match_height,omitempty"`
	MatchVerticalGap float64 `json:"match_vertical_gap,omitempty"`
	MinScale         float64 `json:"min_scale,omitempty"`

	Formats     []string `json:"formats,omitempty"`
	RoundLabels bool     `json:"round_labels,omitempty"`
	Scores      bool     `json:"scores,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Title       string   `json:"title,omitempty"`
	Background  string   `json:"background,omitempty"`

	Refresh bool `json:"refresh,omitempty"`
}

// LayoutResponse is the JSON body for a successful layout run.
// Artifact bytes are base64-encoded by the JSON encoder.
type LayoutResponse struct {
	Validation bracket.ValidationResult `json:"validation"`
	EdgeCases  layout.EdgeCaseResult    `json:"edge_cases"`
	Layout     layout.Layout            `json:"layout"`
	LayoutHash string                   `json:"layout_hash,omitempty"`
	Rounds     []string                 `json:"rounds"`
	Artifacts  map[string][]byte        `json:"artifacts,omitempty"`
	Cached     CachedStages             `json:"cached"`
}

// CachedStages reports which stages were served from the byte cache.
type CachedStages struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

// ValidateRequest is the JSON body for POST /api/v1/validate.
type ValidateRequest struct {
	Matches []*bracket.RawMatch `json:"matches"`
}

// ValidateResponse is the JSON body for a validation run.
type ValidateResponse struct {
	Validation bracket.ValidationResult `json:"validation"`
	MatchCount int                      `json:"match_count"`
	RoundCount int                      `json:"round_count"`
	Rounds     []string                 `json:"rounds"`
}

// handleLayout runs the full pipeline for the posted bracket.
// POST /api/v1/layout
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Matches == nil {
		req.Matches = []*bracket.RawMatch{}
	}

	opts := pipeline.Options{
		Matches:          req.Matches,
		Source:           "api",
		Width:            req.Width,
		Height:           req.Height,
		RoundWidth:       s.cfg.Layout.RoundWidth,
		RoundGap:         s.cfg.Layout.RoundGap,
		MatchHeight:      s.cfg.Layout.MatchHeight,
		MatchVerticalGap: s.cfg.Layout.MatchVerticalGap,
		MinScale:         s.cfg.Layout.MinScale,
		Formats:          req.Formats,
		RoundLabels:      req.RoundLabels,
		Scores:           req.Scores,
		Detailed:         req.Detailed,
		Title:            req.Title,
		Background:       req.Background,
		Refresh:          req.Refresh,
		Logger:           s.logger,
	}
	if req.RoundWidth > 0 {
		opts.RoundWidth = req.RoundWidth
	}
	if req.RoundGap > 0 {
		opts.RoundGap = req.RoundGap
	}
	if req.MatchHeight > 0 {
		opts.MatchHeight = req.MatchHeight
	}
	if req.MatchVerticalGap > 0 {
		opts.MatchVerticalGap = req.MatchVerticalGap
	}
	if req.MinScale > 0 {
		opts.MinScale = req.MinScale
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		Validation: result.Validation,
		EdgeCases:  result.EdgeCases,
		Layout:     result.Layout,
		LayoutHash: result.LayoutHash,
		Rounds:     bracket.RoundNames(len(result.Rounds)),
		Artifacts:  result.Artifacts,
		Cached: CachedStages{
			Layout: result.CacheInfo.LayoutHit,
			Render: result.CacheInfo.RenderHit,
		},
	})
}

// handleValidate validates the posted match records without computing a
// layout.
// POST /api/v1/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Matches == nil {
		req.Matches = []*bracket.RawMatch{}
	}

	opts := pipeline.Options{
		Matches: req.Matches,
		Source:  "api",
		Logger:  s.logger,
	}
	matches, validation, err := s.runner.Validate(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rounds := bracket.OrganizeIntoRounds(matches, s.runner.Memo)
	writeJSON(w, http.StatusOK, ValidateResponse{
		Validation: validation,
		MatchCount: len(matches),
		RoundCount: len(rounds),
		Rounds:     bracket.RoundNames(len(rounds)),
	})
}

// decodeJSON decodes a request body, rejecting trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "unexpected data after JSON body")
	}
	return nil
}
