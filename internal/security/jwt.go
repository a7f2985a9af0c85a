package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification outcomes the HTTP layer needs to tell apart.
var (
	ErrTokenMissing   = errors.New("no token provided")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrSigning        = errors.New("signing key unavailable")
)

type TokenUser struct {
	ID string `json:"id"`
}

// Claims mirrors the wire payload {"user":{"id":...}} expected by clients.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

func MakeAccess(secret, uid string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSigning
	}
	now := time.Now()
	c := Claims{
		User: TokenUser{ID: uid},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   uid,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// ParseAccess returns the uid embedded in the token or exactly one of the
// sentinel errors above. No side effects on success.
func ParseAccess(secret, token string) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.User.ID == "" {
		return "", ErrTokenMalformed
	}
	return c.User.ID, nil
}
