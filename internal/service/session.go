package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/utils"
)

// DefaultSessionTTL is how long an access token stays valid.
const DefaultSessionTTL = time.Hour

// Identity is the authenticated caller extracted from a valid token.
type Identity struct {
	UserID uint64
	Email  string
}

// SessionIssuer issues and verifies stateless HS256 access tokens.  There
// is no session table: a token is valid until it expires and cannot be
// revoked earlier.
type SessionIssuer struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

type SessionOption func(*SessionIssuer)

// WithSessionClock replaces time.Now, for tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionIssuer) { s.now = now }
}

// NewSessionIssuer panics on an empty secret; config.Load refuses to start
// without one, so reaching this with "" is a wiring bug.
func NewSessionIssuer(secret string, ttl time.Duration, opts ...SessionOption) *SessionIssuer {
	if secret == "" {
		panic("service: empty token signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionIssuer{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for u that expires ttl from now.
func (s *SessionIssuer) Issue(u model.User) (utils.AccessToken, error) {
	return utils.NewAccessToken(s.secret, u.ID, u.Email, s.ttl, s.now())
}

// Verify checks raw and returns the identity it was issued for.
func (s *SessionIssuer) Verify(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrMissingCredential
	}
	claims, uid, err := utils.ParseAccessToken(s.secret, raw, s.now())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return Identity{UserID: uid, Email: claims.Email}, nil
}
