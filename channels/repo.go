// Package channels resolves an inbound channel id to the business unit
// that owns its postlogin sessions.
package channels

import "errors"

// ErrNotFound reports an unknown channel id.
var ErrNotFound = errors.New("channel not found")

// Channel describes a configured inbound channel.
type Channel struct {
	ID          string
	PostLoginBU string // May be empty when no business unit is mapped
}

// Repo defines the interface for channel lookup. A datastore-backed
// implementation can replace the static table without touching callers.
type Repo interface {
	// Resolve returns the channel for an id, or ErrNotFound.
	Resolve(channelID string) (*Channel, error)
}
