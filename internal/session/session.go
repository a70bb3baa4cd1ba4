package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// AdminSession is the server-side record proving a successfully
// authenticated admin request. It lives in the session store keyed by
// an opaque server-issued identifier.
type AdminSession struct {
	AdminID   int       `json:"admin_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"login_time"`
}

// ExpiredAt reports whether the session has outlived ttl at the given
// instant. Expiry is fixed from login time and does not slide.
func (s *AdminSession) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoginTime) > ttl
}

// Store holds authenticated-admin state keyed by a server-issued
// session identifier.
type Store interface {
	// Create persists the session and returns its new identifier.
	Create(ctx context.Context, s AdminSession) (string, error)
	// Get loads the session for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*AdminSession, error)
	// Destroy removes the session. Destroying a missing session is not
	// an error.
	Destroy(ctx context.Context, id string) error
}
