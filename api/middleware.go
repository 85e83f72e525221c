package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/cyberguard/console/session"
)

const adminGroup = "admin"

// credentialCacheTTL bounds how long a successful basic auth check is remembered
const credentialCacheTTL = 5 * time.Minute

// MiddlewareAuth checks console operator credentials with go-guardian
type MiddlewareAuth struct {
	Auth          session.Authenticator
	authenticator auth.Authenticator
}

// SetupGoGuardian sets up the go-guardian basic strategy backed by Auth
func (m *MiddlewareAuth) SetupGoGuardian() {
	m.authenticator = auth.New()
	cache := store.NewFIFO(context.Background(), credentialCacheTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)

	m.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
}

// ValidateUser validates a username/password pair against the session authenticator
func (m *MiddlewareAuth) ValidateUser(ctx context.Context, r *http.Request, username, password string) (auth.Info, error) {
	id, err := m.Auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	var groups []string
	if id.Admin {
		groups = []string{adminGroup}
	}
	return auth.NewDefaultUser(id.Username, id.Username, groups, nil), nil
}

// BasicAuth rejects requests without valid basic auth credentials and stores the operator identity
// on the request context
func (m *MiddlewareAuth) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", `Basic realm="cyberguard"`)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("User %s Authenticated\n", user.UserName())

		id := session.Identity{Username: user.UserName()}
		for _, g := range user.Groups() {
			if g == adminGroup {
				id.Admin = true
			}
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
