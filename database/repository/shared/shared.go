// Package shared holds helpers common to the mongo repositories.
package shared

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Default per-operation timeouts.
const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 5 * time.Second
	IndexTimeout = 10 * time.Second
)

// WithTimeout bounds a repository call.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
