// Package auth issues and verifies admin session tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTTL is how long a session token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// ErrUnauthenticated covers every reason a token is rejected: missing,
// malformed, badly signed or expired. Callers never learn which.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the identity carried by a valid token.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Claims is the JWT payload.
type Claims struct {
	jwt.RegisteredClaims
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
}

// Issuer signs and verifies HS256 tokens with a single secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p that expires after the issuer's TTL.
func (i *Issuer) Issue(p Principal) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		AdminID:  p.ID,
		Username: p.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns its principal.
func (i *Issuer) Verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, i.keyFunc)
	if err != nil || !parsed.Valid {
		return Principal{}, ErrUnauthenticated
	}
	return claims.principal(), nil
}

func (i *Issuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	return i.secret, nil
}

func (c *Claims) principal() Principal {
	return Principal{ID: c.AdminID, Username: c.Username}
}
