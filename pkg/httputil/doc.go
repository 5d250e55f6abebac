// Package httputil provides HTTP utilities for remote match sources.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient
// failures. Wrap errors that should trigger another attempt with
// [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff, doubling the delay after each failed
// attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
