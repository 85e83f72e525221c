package store

import (
	"sync"
	"time"

	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/remote"
)

// Role is the operator session as seen by the store
type Role interface {
	IsAdmin() bool
	// Token is the bearer token forwarded to the backend, empty when there is none
	Token() string
}

// Store is the in-memory view of reports and forum posts. It merges records created in this
// session (local origin) with the ones polled from the backend (remote origin) and gates
// administrative changes on the role. It is safe for concurrent use; no lock is held while a
// request to the backend is in flight.
type Store struct {
	api       remote.API
	role      Role
	now       func() time.Time
	scheduler Scheduler

	mu            sync.RWMutex
	active        bool
	localReports  []models.Report
	remoteReports []models.Report
	localPosts    []models.ForumPost
	remotePosts   []models.ForumPost
	// backend ids flagged from this console, re-applied to every fetched page
	flagged map[int64]bool
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, used for report dates and post timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithScheduler sets the recurring task runner used by StartPolling
func WithScheduler(sched Scheduler) Option {
	return func(s *Store) { s.scheduler = sched }
}

// WithDemoData seeds the local collections with the demo reports and posts
func WithDemoData() Option {
	return func(s *Store) {
		s.localReports = models.DemoReports()
		s.localPosts = models.DemoPosts()
	}
}

// New creates a Store talking to api on behalf of role
func New(api remote.API, role Role, opts ...Option) *Store {
	s := &Store{
		api:    api,
		role:   role,
		now:     time.Now,
		active:  true,
		flagged: map[int64]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close tears the store down. Responses that arrive afterwards are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Active reports whether Close has not been called yet
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}
