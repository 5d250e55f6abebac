package mongo

import (
	"context"
	"testing"

	"github.com/stageside/bracketeer/pkg/errors"
)

func TestNewRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{URI: "http://localhost"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad scheme error = %v, want INVALID_INPUT", err)
	}

	_, err = New(ctx, Config{URI: "mongodb://localhost:27017"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing database error = %v, want INVALID_INPUT", err)
	}
}
