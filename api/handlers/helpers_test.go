package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cyberguard/console/api/handlers"
	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/remote/mocks"
	"github.com/cyberguard/console/session"
	"github.com/cyberguard/console/store"
)

type fakeRole struct {
	admin bool
	token string
}

func (r fakeRole) IsAdmin() bool { return r.admin }
func (r fakeRole) Token() string { return r.token }

var (
	admin   = fakeRole{admin: true, token: "abc123"}
	visitor = fakeRole{}
)

func newStore(api *mocks.API, role store.Role, opts ...store.Option) *store.Store {
	clock := store.WithClock(func() time.Time { return time.Date(2025, 5, 6, 12, 0, 0, 0, time.UTC) })
	return store.New(api, role, append([]store.Option{clock}, opts...)...)
}

// newApp builds an App the way Initialize does, with the backend mocked
func newApp(t *testing.T, api *mocks.API) *handlers.App {
	auth, err := session.NewDemoAuthenticator("Admin123", "Admin@123")
	require.NoError(t, err)
	holder := session.NewHolder("test-secret", auth, session.FileStorage{Path: filepath.Join(t.TempDir(), "session")})

	a := &handlers.App{
		Config:  config.Config{RequestTimeout: time.Second, PollInterval: time.Second},
		Session: holder,
		Store:   store.New(api, holder),
	}
	a.Router = a.New()
	return a
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

