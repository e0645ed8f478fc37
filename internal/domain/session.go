package domain

import "context"

// UserSessionKey is the well-known key the session is persisted under.
const UserSessionKey = "user"

// UserSession is the locally persisted identity created at login.
// It never expires on its own.
type UserSession struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Token    string `json:"token,omitempty"`
}

// HasID reports whether the session identifies a user.
func (s *UserSession) HasID() bool {
	return s != nil && s.ID != ""
}

// SessionStore persists the UserSession in a local key/value store.
// Load returns (nil, nil) when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (*UserSession, error)
	Save(ctx context.Context, session *UserSession) error
	Clear(ctx context.Context) error
}
