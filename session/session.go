package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Session is a snapshot of the operator role. Token is the bearer token forwarded to the backend.
type Session struct {
	IsAdmin       bool   `json:"isAdmin"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"-"`
}

// Holder owns the operator session for the lifetime of the process. The only thing persisted is
// one signed token; the admin flag is read back from its verified scope claim.
type Holder struct {
	mu      sync.RWMutex
	secret  []byte
	auth    Authenticator
	storage Storage
	now     func() time.Time

	signed  string
	scope   string
	subject string
	remote  string
}

// NewHolder creates an unauthenticated holder. Call Restore to pick up a persisted session.
func NewHolder(secret string, auth Authenticator, storage Storage) *Holder {
	return &Holder{
		secret:  []byte(secret),
		auth:    auth,
		storage: storage,
		now:     time.Now,
	}
}

// Authenticator returns the credential checker the holder logs in with
func (h *Holder) Authenticator() Authenticator {
	return h.auth
}

// IsAdmin reports whether the operator logged in as an admin
func (h *Holder) IsAdmin() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scope == ScopeAdmin
}

// Token returns the backend bearer token, empty when none was provided
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.remote
}

// SessionToken returns the signed token that is persisted
func (h *Holder) SessionToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.signed
}

// Current returns a snapshot of the session
func (h *Holder) Current() Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Session{
		IsAdmin:       h.scope == ScopeAdmin,
		Authenticated: h.scope != "",
		Token:         h.remote,
	}
}

// Login checks the credentials and, on success, starts a session. It is the entry point for
// callers outside the HTTP console; the console authenticates through the go-guardian basic
// strategy and then calls Grant.
func (h *Holder) Login(ctx context.Context, username, password string) error {
	id, err := h.auth.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	return h.Grant(id)
}

// Grant starts a session for an identity that was already authenticated. The backend token, if
// any, is kept.
func (h *Holder) Grant(id Identity) error {
	scope := ScopeUser
	if id.Admin {
		scope = ScopeAdmin
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.persistLocked(scope, id.Username, h.remote); err != nil {
		return err
	}
	zap.S().Infow("session granted", "user", id.Username, "scope", scope)
	return nil
}

// UseRemoteToken stores a bearer token issued by the backend, keeping the current scope
func (h *Holder) UseRemoteToken(token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	scope := h.scope
	if scope == "" {
		scope = ScopeUser
	}
	return h.persistLocked(scope, h.subject, token)
}

// Logout forgets the session in memory and on disk
func (h *Holder) Logout() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.signed, h.scope, h.subject, h.remote = "", "", "", ""
	return h.storage.Clear()
}

// Restore loads the persisted session. A token that fails verification is discarded.
func (h *Holder) Restore() error {
	token, err := h.storage.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	c, err := parseToken(h.secret, token)
	if err != nil {
		zap.S().Warnw("discarding persisted session", "error", err)
		return h.storage.Clear()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.signed = token
	h.scope = c.Scope
	h.subject = c.Subject
	h.remote = c.Remote
	return nil
}

func (h *Holder) persistLocked(scope, subject, remote string) error {
	c := claims{Scope: scope, Remote: remote}
	c.Subject = subject
	signed, err := mintToken(h.secret, c, h.now())
	if err != nil {
		return err
	}
	if err := h.storage.Save(signed); err != nil {
		return err
	}
	h.signed, h.scope, h.subject, h.remote = signed, scope, subject, remote
	return nil
}
