// Package jsonstore implements the repositories on top of the record store.
// Each operation loads the whole collection, scans it in memory and, for
// writes, saves it back inside one locked cycle.
package jsonstore

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time. Tests replace it for deterministic stamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.New().String()
}

// removeFirst drops the first element matching pred and reports whether one did.
func removeFirst[T any](items []T, pred func(T) bool) ([]T, bool) {
	for i := range items {
		if pred(items[i]) {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
