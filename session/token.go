package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Token scopes
const (
	ScopeAdmin = "admin"
	ScopeUser  = "user"
)

// claims is the content of the persisted session token. Remote carries the bearer token issued by
// the backend, if the operator provided one.
type claims struct {
	Scope  string `json:"scope"`
	Remote string `json:"remote,omitempty"`
	jwt.RegisteredClaims
}

func mintToken(secret []byte, c claims, now time.Time) (string, error) {
	c.ID = uuid.New().String()
	c.IssuedAt = jwt.NewNumericDate(now)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

func parseToken(secret []byte, token string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if c.Scope != ScopeAdmin && c.Scope != ScopeUser {
		return nil, errors.Errorf("invalid session scope %q", c.Scope)
	}
	return c, nil
}
