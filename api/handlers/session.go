package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/cyberguard/console/api"
	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/session"
)

// SessionHolder is the part of the session holder the auth handlers use
type SessionHolder interface {
	Current() session.Session
	Grant(id session.Identity) error
	UseRemoteToken(token string) error
	Logout() error
}

// Session handles operator login and logout
type Session struct {
	Holder SessionHolder
}

// RemoteToken is the body of a backend token hand-over
type RemoteToken struct {
	Token string `json:"token"`
}

// LoginHandler starts a session for the operator that passed basic auth
func (s Session) LoginHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to login", http.StatusUnauthorized, w, errors.New("no authenticated identity"))
		return
	}
	if err := s.Holder.Grant(id); err != nil {
		config.ErrorStatus("failed to persist session", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Holder.Current())
}

// RemoteTokenHandler stores the bearer token used against the backend
func (s Session) RemoteTokenHandler(w http.ResponseWriter, r *http.Request) {
	var body RemoteToken
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.Token == "" {
		config.ErrorStatus("token is required", http.StatusBadRequest, w, nil, "token")
		return
	}
	if err := s.Holder.UseRemoteToken(body.Token); err != nil {
		config.ErrorStatus("failed to persist session", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Holder.Current())
}

// LogoutHandler ends the session
func (s Session) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Holder.Logout(); err != nil {
		config.ErrorStatus("failed to logout", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Holder.Current())
}

// SessionHandler returns the current role
func (s Session) SessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Holder.Current())
}
