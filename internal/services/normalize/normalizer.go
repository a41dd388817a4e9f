// Package normalize turns provider-shaped tables, series and records into
// JSON-safe document values. Nothing here returns NaN or Inf.
package normalize

import (
	applogger "FinDoc/pkg/logger"
)

// Normalizer converts provider data into document values.
// It holds no per-request state and is safe for concurrent use.
type Normalizer struct {
	l *applogger.Logger
}

// New creates a Normalizer. A nil logger disables failure logging.
func New(l *applogger.Logger) *Normalizer {
	return &Normalizer{l: l}
}

// Head returns at most n leading elements of xs.
func Head[T any](xs []T, n int) []T {
	if len(xs) <= n {
		return xs
	}
	return xs[:n]
}

// Tail returns at most n trailing elements of xs.
func Tail[T any](xs []T, n int) []T {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
