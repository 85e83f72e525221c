package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cyberguard/console/api"
	"github.com/cyberguard/console/api/scheduler"
	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/remote"
	"github.com/cyberguard/console/session"
	"github.com/cyberguard/console/store"
)

// App stores the router, the store and the session, so they can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Store   *store.Store
	Session *session.Holder

	scheduler *scheduler.Scheduler
	poll      *store.PollHandle
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the login route
	m := &api.MiddlewareAuth{Auth: a.Session.Authenticator()}
	m.SetupGoGuardian()

	r := api.New()
	r.Use(api.LoggingMiddleware)

	rep := Report{Store: a.Store}
	p := Post{Store: a.Store}
	s := Session{Holder: a.Session}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/auth/login", m.BasicAuth(http.HandlerFunc(s.LoginHandler))).Methods("POST")
	apiCreate.HandleFunc("/auth/remote-token", s.RemoteTokenHandler).Methods("POST")
	apiCreate.HandleFunc("/auth/logout", s.LogoutHandler).Methods("DELETE")
	apiCreate.HandleFunc("/session", s.SessionHandler).Methods("GET")

	apiCreate.HandleFunc("/reports", rep.ReportsHandler).Methods("GET")
	apiCreate.HandleFunc("/reports", rep.CreateReportHandler).Methods("POST")
	apiCreate.HandleFunc("/reports/stats", rep.ReportStatsHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/{origin}/{id}", rep.ReportByKeyHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/{origin}/{id}/status", rep.UpdateReportStatusHandler).Methods("PUT")
	apiCreate.HandleFunc("/remote/reports/{id}", rep.RemoteReportHandler).Methods("GET")
	apiCreate.HandleFunc("/refresh", rep.RefreshHandler).Methods("POST")

	apiCreate.HandleFunc("/posts", p.PostsHandler).Methods("GET")
	apiCreate.HandleFunc("/posts", p.CreatePostHandler).Methods("POST")
	apiCreate.HandleFunc("/posts/export.csv", p.ExportPostsHandler).Methods("GET")
	apiCreate.HandleFunc("/posts/{origin}/{id}/flag", p.FlagPostHandler).Methods("POST")

	return r
}

// Initialize is invoked by main to restore the session, build the store and create a router
func (a *App) Initialize() error {
	authenticator, err := session.NewDemoAuthenticator(a.Config.AdminUsername, a.Config.AdminPassword)
	if err != nil {
		zap.S().Errorw("failed to create authenticator", "error", err)
		return err
	}

	a.Session = session.NewHolder(a.Config.SessionSecret, authenticator, session.FileStorage{Path: a.Config.SessionFile})
	if err := a.Session.Restore(); err != nil {
		zap.S().Errorw("failed to restore session", "error", err)
		return err
	}
	zap.S().Infow("session restored", "isAdmin", a.Session.IsAdmin())

	a.scheduler = scheduler.NewScheduler()
	opts := []store.Option{store.WithScheduler(a.scheduler)}
	if a.Config.SeedDemoData {
		opts = append(opts, store.WithDemoData())
	}
	a.Store = store.New(remote.NewClient(a.Config.BaseURL, a.Config.RequestTimeout), a.Session, opts...)

	// initialize api router
	a.initializeRoutes()
	return nil
}

// StartPolling starts the scheduler and polls the backend every Config.PollInterval
func (a *App) StartPolling(ctx context.Context) error {
	a.scheduler.Start()
	h, err := a.Store.StartPolling(ctx, a.Config.PollInterval)
	if err != nil {
		return err
	}
	a.poll = h
	return nil
}

// Shutdown stops polling and tears the store down
func (a *App) Shutdown() {
	if a.poll != nil {
		a.poll.Stop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Store != nil {
		a.Store.Close()
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
