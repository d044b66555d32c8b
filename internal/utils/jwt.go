package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // sentinel for malformed subjects
	"strconv" // user IDs travel as decimal strings in the sub claim
	"time"    // expiry arithmetic

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string that clients send back in the
// Authorization header.  Exp stores the expiration timestamp in UTC.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the payload carried by access tokens.  Subject holds the user
// ID as a decimal string and Email the address the user logged in with.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ErrBadSubject is returned when a token's sub claim is not a user ID.
var ErrBadSubject = errors.New("token subject is not a user id")

// NewAccessToken builds and signs an HS256 JWT for a user.  The token is
// issued at now and expires ttl later.  NumericDate has one-second
// precision, so sub-second parts of now are dropped.
func NewAccessToken(secret string, userID uint64, email string, ttl time.Duration, now time.Time) (AccessToken, error) {
	now = now.UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp.Truncate(time.Second)}, nil
}

// ParseAccessToken verifies the signature and expiry of raw as of now and
// returns its claims together with the decoded user ID.  Only HS256 is
// accepted; tokens without an exp claim are rejected.
func ParseAccessToken(secret, raw string, now time.Time) (*Claims, uint64, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, 0, err
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return nil, 0, ErrBadSubject
	}
	return claims, uid, nil
}
