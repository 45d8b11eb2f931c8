package storage

import (
	"context"

	"github.com/dukahq/dukapos/pkg/api"
)

// SessionStorage defines interface for the durable session store on client.
// The store holds exactly three entries: access token, refresh token and the
// JSON-encoded user record. Absence of any entry is a valid state (anonymous
// session, or a session where only the refresh token survived).
type SessionStorage interface {
	// SaveSession writes all three session fields as a single atomic unit,
	// replacing whatever was stored before
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves stored session data.
	// Returns ErrSessionNotFound if no entry exists at all; a partially
	// populated session (e.g. refresh token only) is returned as-is.
	GetSession(ctx context.Context) (*SessionData, error)

	// SetAccessToken replaces only the stored access token, leaving the
	// refresh token and user record untouched (transparent refresh)
	SetAccessToken(ctx context.Context, token string) error

	// GetUser retrieves and decodes the stored user record.
	// Returns ErrSessionNotFound if the record is absent or does not parse;
	// a broken record is indistinguishable from an anonymous session.
	GetUser(ctx context.Context) (*api.User, error)

	// DeleteSession removes all session entries (logout).
	// Idempotent: deleting an empty store is a no-op, not an error.
	DeleteSession(ctx context.Context) error
}

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// GetTerminalID returns the persistent ID of this POS terminal,
	// generating and saving one on first call
	GetTerminalID(ctx context.Context) (string, error)
}

// SessionData represents session state in storage.
// User is nil when no user record is stored.
type SessionData struct {
	User         *api.User
	AccessToken  string
	RefreshToken string
}
