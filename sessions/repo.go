package sessions

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a missing key, distinct from a store failure.
	ErrNotFound = errors.New("session not found")

	// ErrCorruptRecord reports a key that exists but whose value cannot be
	// decoded into a SessionData.
	ErrCorruptRecord = errors.New("invalid session data")
)

// Repo defines the interface for session storage. Put rewrites the full TTL
// window on every call, so an actively renewed session never expires.
// Concurrent writers for the same username are not excluded: the last
// writer wins.
type Repo interface {
	// Put stores a record under Key(record.ChatUsername) with the given TTL.
	Put(ctx context.Context, record *SessionData, ttl time.Duration) error

	// Get loads a record by chat username. Returns ErrNotFound when absent,
	// ErrCorruptRecord when present but undecodable.
	Get(ctx context.Context, chatUsername string) (*SessionData, error)

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
