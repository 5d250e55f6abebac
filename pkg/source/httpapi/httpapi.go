// Package httpapi reads raw match records from a remote tournament API.
//
// The endpoint must return the same JSON shape the file source accepts: a
// bare array of raw matches or an object with a "matches" key. Transient
// failures (network errors, 5xx responses, rate limits) are retried with
// exponential backoff.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/httputil"
	"github.com/stageside/bracketeer/pkg/observability"
	"github.com/stageside/bracketeer/pkg/source"
	"github.com/stageside/bracketeer/pkg/source/file"
)

// Source reads raw matches from an HTTP endpoint.
type Source struct {
	endpoint string
	client   *http.Client
}

var _ source.Source = (*Source)(nil)

// New creates an HTTP match source for the given endpoint URL.
// A nil client uses a default with a 30 second timeout.
func New(endpoint string, client *http.Client) (*Source, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid endpoint URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "endpoint must be http or https, got %q", u.Scheme)
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Source{endpoint: endpoint, client: client}, nil
}

// Name identifies the source in logs and diagnostics.
func (s *Source) Name() string { return s.endpoint }

// Matches fetches and decodes the raw match records.
func (s *Source) Matches(ctx context.Context) ([]*bracket.RawMatch, error) {
	var matches []*bracket.RawMatch

	err := httputil.RetryWithBackoff(ctx, func() error {
		start := time.Now()
		observability.HTTP().OnRequest(ctx, http.MethodGet, hostOf(s.endpoint), "")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, hostOf(s.endpoint), "", err)
			return httputil.Retryable(err)
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, http.MethodGet, hostOf(s.endpoint), "", resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return httputil.Retryable(fmt.Errorf("server returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeNetwork, "fetch matches: %s", resp.Status)
		}

		matches, err = file.ReadJSON(resp.Body)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch matches from %s", s.endpoint)
	}
	return matches, nil
}

func hostOf(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil {
		return u.Host
	}
	return endpoint
}
