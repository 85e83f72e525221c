package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a username/password pair is rejected
var ErrInvalidCredentials = errors.New("invalid username or password")

// Identity is who an Authenticator vouched for
type Identity struct {
	Username string
	Admin    bool
}

// Authenticator checks operator credentials. Swap DemoAuthenticator for a real one in production.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// DemoAuthenticator accepts a single admin account configured at start-up. It is not meant to be secure.
type DemoAuthenticator struct {
	usernameHash [sha256.Size]byte
	passwordHash []byte
}

// NewDemoAuthenticator hashes password once so it is never kept in memory in clear
func NewDemoAuthenticator(username, password string) (*DemoAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash demo admin password")
	}
	return &DemoAuthenticator{
		usernameHash: sha256.Sum256([]byte(username)),
		passwordHash: hash,
	}, nil
}

// Authenticate validates the demo admin credentials
func (a *DemoAuthenticator) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	usernameHash := sha256.Sum256([]byte(username))
	usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], a.usernameHash[:]) == 1

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil || !usernameMatch {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: username, Admin: true}, nil
}
