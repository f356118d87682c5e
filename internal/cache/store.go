// Package cache holds the live session store. Every mutation goes through
// Update so that writes to one session are serialized while different
// sessions proceed in parallel.
package cache

import (
	"context"
	"errors"

	"mentorsurvey/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConflict        = errors.New("session modified concurrently")
)

// UpdateFunc mutates a private copy of a session. Returning an error discards
// the mutation.
type UpdateFunc func(s *model.Session) error

// SessionStore keeps live sessions keyed by session id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Put(ctx context.Context, s *model.Session) error
	// Add stores s unless a session with the same id is already live. It
	// returns the session that ends up stored and whether it was s.
	Add(ctx context.Context, s *model.Session) (*model.Session, bool, error)
	Delete(ctx context.Context, id string) error
	// Update applies fn under the session's lock and stores the result.
	Update(ctx context.Context, id string, fn UpdateFunc) (*model.Session, error)
}
