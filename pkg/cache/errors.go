package cache

import "errors"

// ErrNetwork marks backend failures (timeouts, connection errors) so
// callers can tell a degraded cache from a plain miss. Misses are
// reported through Get's ok result, never as an error.
var ErrNetwork = errors.New("cache backend unreachable")
