package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/remote"
	"github.com/cyberguard/console/remote/mocks"
)

type fakeRole struct {
	admin bool
	token string
}

func (r fakeRole) IsAdmin() bool { return r.admin }
func (r fakeRole) Token() string { return r.token }

var (
	admin   = fakeRole{admin: true, token: "tok"}
	visitor = fakeRole{}
	today   = time.Date(2025, 5, 6, 9, 30, 0, 0, time.UTC)
)

func newTestStore(api remote.API, role Role, opts ...Option) *Store {
	opts = append([]Option{WithClock(func() time.Time { return today })}, opts...)
	return New(api, role, opts...)
}

// snapshot captures everything a caller can observe
type snapshot struct {
	reports []models.ReportRecord
	posts   []models.PostRecord
}

func takeSnapshot(s *Store) snapshot {
	return snapshot{reports: s.MergedReports(ReportFilter{}), posts: s.MergedPosts(PostFilter{})}
}

func TestAddLocalReport_MostRecentFirstUniqueIDs(t *testing.T) {
	s := newTestStore(new(mocks.API), visitor)

	ids := map[int64]bool{}
	var last models.Report
	for i := 0; i < 10; i++ {
		last = s.AddLocalReport(models.ReportInput{Title: "t", Description: "description"})
		assert.False(t, ids[last.ID], "duplicate id %d", last.ID)
		ids[last.ID] = true
	}

	merged := s.MergedReports(ReportFilter{})
	require.Len(t, merged, 10)
	assert.Equal(t, last.ID, merged[0].ID)
	for i := 1; i < len(merged); i++ {
		assert.Greater(t, merged[i-1].ID, merged[i].ID)
	}
}

func TestAddLocalReport_Defaults(t *testing.T) {
	s := newTestStore(new(mocks.API), visitor)

	r := s.AddLocalReport(models.ReportInput{Title: "Harassment", Description: "Repeated comments", Location: "Social Media"})
	assert.Equal(t, models.Report{
		ID:          1,
		Type:        "Harassment",
		Platform:    "Social Media",
		Status:      models.StatusNew,
		Severity:    models.SeverityMedium,
		Date:        "2025-05-06",
		Description: "Repeated comments",
	}, r)
}

func TestWithDemoData(t *testing.T) {
	s := newTestStore(new(mocks.API), visitor, WithDemoData())

	assert.Len(t, s.MergedReports(ReportFilter{}), 5)
	assert.Len(t, s.MergedPosts(PostFilter{}), 3)
	assert.Equal(t, int64(6), s.AddLocalReport(models.ReportInput{Title: "x"}).ID)
}

func TestMergedReports_CollidingIDsKeepBothOrigins(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Return([]models.IncidentReport{
		{ID: 1, Title: "remote one"},
		{ID: 2, Title: "remote two"},
		{ID: 1, Title: "remote one again"},
	}, nil)
	s := newTestStore(api, admin)
	s.AddLocalReport(models.ReportInput{Title: "local one", Description: "0123456789"})

	_, err := s.FetchReports(context.Background())
	require.NoError(t, err)

	merged := s.MergedReports(ReportFilter{Status: "all"})
	require.Len(t, merged, 3)
	assert.Equal(t, "local:1", merged[0].Key)
	assert.Equal(t, "remote:1", merged[1].Key)
	assert.Equal(t, "remote one", merged[1].Type)
	assert.Equal(t, "remote:2", merged[2].Key)

	seen := map[string]bool{}
	for _, r := range merged {
		assert.False(t, seen[r.Key], "duplicate key %s", r.Key)
		seen[r.Key] = true
	}

	local, ok := s.Report(models.Key{Origin: models.OriginLocal, ID: 1})
	require.True(t, ok)
	assert.Equal(t, "local one", local.Type)
	rem, ok := s.Report(models.Key{Origin: models.OriginRemote, ID: 1})
	require.True(t, ok)
	assert.Equal(t, "remote one", rem.Type)
}

func TestMergedReports_Filter(t *testing.T) {
	s := newTestStore(new(mocks.API), admin, WithDemoData())

	assert.Len(t, s.MergedReports(ReportFilter{Status: "new"}), 2)
	assert.Len(t, s.MergedReports(ReportFilter{Status: "In Progress"}), 2)
	assert.Len(t, s.MergedReports(ReportFilter{Status: "inprogress"}), 2)
	assert.Len(t, s.MergedReports(ReportFilter{Status: "ALL"}), 5)
	assert.Len(t, s.MergedReports(ReportFilter{Severity: "high"}), 3)
	assert.Len(t, s.MergedReports(ReportFilter{Status: "new", Severity: "HIGH"}), 2)
	assert.Empty(t, s.MergedReports(ReportFilter{Status: "escalated"}))
}

func TestMergedReports_ReturnsCopy(t *testing.T) {
	s := newTestStore(new(mocks.API), admin, WithDemoData())

	merged := s.MergedReports(ReportFilter{})
	merged[0].Status = models.StatusResolved
	merged[0].Description = "changed"

	again := s.MergedReports(ReportFilter{})
	assert.Equal(t, models.StatusInProgress, again[0].Status)
	assert.NotEqual(t, "changed", again[0].Description)

	posts := s.MergedPosts(PostFilter{})
	posts[0].Tags[0] = "changed"
	assert.NotEqual(t, "changed", s.MergedPosts(PostFilter{})[0].Tags[0])
}

func TestSubmitReport_RemoteFailureKeepsLocalCopy(t *testing.T) {
	api := new(mocks.API)
	in := models.ReportInput{Title: "x", Description: "short desc ok"}
	api.On("CreateReport", mock.Anything, in, "").Return(nil, &remote.StatusError{Op: "create report", StatusCode: 500, Body: "boom"})
	s := newTestStore(api, visitor)

	r, err := s.SubmitReport(context.Background(), in)
	var submitErr *RemoteSubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.Equal(t, "short desc ok", r.Description)
	assert.Zero(t, r.RemoteID)

	merged := s.MergedReports(ReportFilter{Status: "all"})
	require.Len(t, merged, 1)
	assert.Equal(t, models.OriginLocal, merged[0].Origin)
	assert.Equal(t, "short desc ok", merged[0].Description)
}

func TestSubmitReport_NetworkFailure(t *testing.T) {
	api := new(mocks.API)
	api.On("CreateReport", mock.Anything, mock.Anything, "tok").Return(nil, errors.New("connection refused"))
	s := newTestStore(api, admin)

	_, err := s.SubmitReport(context.Background(), models.ReportInput{Title: "x", Description: "short desc ok"})
	var submitErr *RemoteSubmitError
	require.True(t, errors.As(err, &submitErr))
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Len(t, s.MergedReports(ReportFilter{}), 1)
}

func TestSubmitReport_Unauthorized(t *testing.T) {
	api := new(mocks.API)
	api.On("CreateReport", mock.Anything, mock.Anything, "").Return(nil, &remote.StatusError{Op: "create report", StatusCode: 401})
	s := newTestStore(api, visitor)

	_, err := s.SubmitReport(context.Background(), models.ReportInput{Title: "x", Description: "short desc ok"})
	var authErr *AuthRequiredError
	assert.True(t, errors.As(err, &authErr))
}

func TestSubmitReport_RecordsRemoteID(t *testing.T) {
	api := new(mocks.API)
	in := models.ReportInput{Title: "Threats", Description: "Threatening messages", Urgency: "high"}
	api.On("CreateReport", mock.Anything, in, "tok").Return(&models.IncidentReport{ID: 31, Title: in.Title}, nil)
	s := newTestStore(api, admin)

	r, err := s.SubmitReport(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(31), r.RemoteID)
	assert.Equal(t, models.SeverityHigh, r.Severity)

	rec, ok := s.Report(models.Key{Origin: models.OriginLocal, ID: r.ID})
	require.True(t, ok)
	assert.Equal(t, int64(31), rec.RemoteID)
}

func TestSubmitReport_Validation(t *testing.T) {
	api := new(mocks.API)
	s := newTestStore(api, admin)

	_, err := s.SubmitReport(context.Background(), models.ReportInput{Title: "  ", Description: "too short", Urgency: "critical"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Error
	}
	assert.Equal(t, "title cannot be blank", fields["title"])
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "urgency")

	assert.Empty(t, s.MergedReports(ReportFilter{}))
	api.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestNonAdminMutationsAreForbidden(t *testing.T) {
	api := new(mocks.API)
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{{ID: 42, Title: "remote"}}, nil)
	s := newTestStore(api, visitor, WithDemoData())
	_, err := s.FetchPosts(context.Background())
	require.NoError(t, err)

	before := takeSnapshot(s)

	err = s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 1}, "Resolved")
	var forbidden *ForbiddenError
	assert.True(t, errors.As(err, &forbidden))

	err = s.FlagPost(context.Background(), models.Key{Origin: models.OriginRemote, ID: 42})
	assert.True(t, errors.As(err, &forbidden))

	// the role check comes before input checks
	err = s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 1}, "bogus")
	assert.True(t, errors.As(err, &forbidden))

	assert.Equal(t, before, takeSnapshot(s))
	api.AssertNotCalled(t, "FlagPost", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Return([]models.IncidentReport{{ID: 7, Status: "New"}}, nil)
	s := newTestStore(api, admin, WithDemoData())
	_, err := s.FetchReports(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 1}, "in-progress"))
	r, _ := s.Report(models.Key{Origin: models.OriginLocal, ID: 1})
	assert.Equal(t, models.StatusInProgress, r.Status)

	// any status is reachable from any status
	require.NoError(t, s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 1}, "New"))
	r, _ = s.Report(models.Key{Origin: models.OriginLocal, ID: 1})
	assert.Equal(t, models.StatusNew, r.Status)

	err = s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 1}, "escalated")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Fields[0].Field)

	assert.Equal(t, ErrReadOnly, s.UpdateStatus(models.Key{Origin: models.OriginRemote, ID: 7}, "Resolved"))
	assert.Equal(t, ErrNotFound, s.UpdateStatus(models.Key{Origin: models.OriginRemote, ID: 8}, "Resolved"))
	assert.Equal(t, ErrNotFound, s.UpdateStatus(models.Key{Origin: models.OriginLocal, ID: 99}, "Resolved"))

	rem, _ := s.Report(models.Key{Origin: models.OriginRemote, ID: 7})
	assert.Equal(t, models.StatusNew, rem.Status)
}

func TestFlagPost_Admin(t *testing.T) {
	api := new(mocks.API)
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{{ID: 42, Title: "remote"}}, nil)
	api.On("FlagPost", mock.Anything, int64(42), "tok").Return(nil)
	s := newTestStore(api, admin)
	_, err := s.FetchPosts(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.FlagPost(context.Background(), models.Key{Origin: models.OriginRemote, ID: 42}))

	p, ok := s.Post(models.Key{Origin: models.OriginRemote, ID: 42})
	require.True(t, ok)
	assert.True(t, p.Flagged)
	api.AssertNumberOfCalls(t, "FlagPost", 1)
}

func TestFlagPost_SurvivesNextFetch(t *testing.T) {
	api := new(mocks.API)
	// the backend keeps reporting the post as unflagged
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{{ID: 42, Title: "remote"}}, nil)
	api.On("FlagPost", mock.Anything, int64(42), "tok").Return(nil)
	s := newTestStore(api, admin)
	_, err := s.FetchPosts(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.FlagPost(context.Background(), models.Key{Origin: models.OriginRemote, ID: 42}))

	posts, err := s.FetchPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Flagged)

	p, ok := s.Post(models.Key{Origin: models.OriginRemote, ID: 42})
	require.True(t, ok)
	assert.True(t, p.Flagged)
	assert.Len(t, s.MergedPosts(PostFilter{FlaggedOnly: true}), 1)
}

func TestFlagPost_RemoteFailureLeavesStateUnchanged(t *testing.T) {
	api := new(mocks.API)
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{{ID: 42, Title: "remote"}}, nil)
	api.On("FlagPost", mock.Anything, int64(42), "tok").Return(&remote.StatusError{Op: "flag post", StatusCode: 500})
	s := newTestStore(api, admin)
	_, err := s.FetchPosts(context.Background())
	require.NoError(t, err)
	before := takeSnapshot(s)

	err = s.FlagPost(context.Background(), models.Key{Origin: models.OriginRemote, ID: 42})
	var mutErr *RemoteMutationError
	require.True(t, errors.As(err, &mutErr))
	var se *remote.StatusError
	assert.True(t, errors.As(err, &se))

	assert.Equal(t, before, takeSnapshot(s))
}

func TestFlagPost_LocalPost(t *testing.T) {
	api := new(mocks.API)
	api.On("CreatePost", mock.Anything, mock.Anything).Return(&models.ForumPost{ID: 90}, nil)
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{{ID: 90, Title: "mine"}}, nil)
	api.On("FlagPost", mock.Anything, int64(90), "tok").Return(nil)
	s := newTestStore(api, admin, WithDemoData())

	// demo posts were never sent to the backend
	err := s.FlagPost(context.Background(), models.Key{Origin: models.OriginLocal, ID: 1})
	var mutErr *RemoteMutationError
	require.True(t, errors.As(err, &mutErr))
	assert.Equal(t, ErrNotSynced, errors.Cause(mutErr.Err))

	p, err := s.SubmitPost(context.Background(), models.PostInput{Title: "mine", Content: "help", Category: models.CategoryVerbal})
	require.NoError(t, err)
	_, err = s.FetchPosts(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.FlagPost(context.Background(), models.Key{Origin: models.OriginLocal, ID: p.ID}))
	local, _ := s.Post(models.Key{Origin: models.OriginLocal, ID: p.ID})
	assert.True(t, local.Flagged)
	rem, _ := s.Post(models.Key{Origin: models.OriginRemote, ID: 90})
	assert.True(t, rem.Flagged)

	assert.Equal(t, ErrNotFound, s.FlagPost(context.Background(), models.Key{Origin: models.OriginRemote, ID: 1000}))
}

func TestSubmitPost(t *testing.T) {
	api := new(mocks.API)
	api.On("CreatePost", mock.Anything, models.CreatePost{
		Title:       "Rumors",
		Content:     "Someone is spreading rumors",
		Category:    "Cyberbullying",
		Type:        "cyber",
		Tags:        []string{"advice-needed", "cyber"},
		IsAnonymous: true,
	}).Return(nil, &remote.StatusError{Op: "create post", StatusCode: 503})
	s := newTestStore(api, visitor)

	p, err := s.SubmitPost(context.Background(), models.PostInput{Title: "Rumors", Content: "Someone is spreading rumors", Category: models.CategoryCyber, IsAdviceSeeker: true})
	var submitErr *RemoteSubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.Equal(t, models.ForumPost{
		ID:             1,
		Title:          "Rumors",
		Content:        "Someone is spreading rumors",
		Category:       "Cyberbullying",
		Author:         "Anonymous",
		Timestamp:      "2025-05-06T09:30:00Z",
		Tags:           []string{"advice-needed", "cyber"},
		IsAdviceSeeker: true,
		School:         "Unknown",
	}, p)
	assert.Len(t, s.MergedPosts(PostFilter{}), 1)

	_, err = s.SubmitPost(context.Background(), models.PostInput{Title: "x", Content: "y", Category: "sports"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Len(t, s.MergedPosts(PostFilter{}), 1)
}

func TestMergedPosts_Filter(t *testing.T) {
	api := new(mocks.API)
	api.On("GetPosts", mock.Anything).Return([]models.ForumPost{
		{ID: 1, Title: "Group chat", Content: "They kicked me out", Category: "cyber", Tags: []string{"exclusion"}, Flagged: true},
	}, nil)
	s := newTestStore(api, visitor, WithDemoData())
	_, err := s.FetchPosts(context.Background())
	require.NoError(t, err)

	assert.Len(t, s.MergedPosts(PostFilter{}), 4)
	assert.Len(t, s.MergedPosts(PostFilter{Category: "all"}), 4)
	assert.Len(t, s.MergedPosts(PostFilter{Category: "physical"}), 1)

	cyber := s.MergedPosts(PostFilter{Category: "Cyber"})
	for _, p := range cyber {
		assert.True(t, models.MatchesCategory(p.Category, "cyber"))
	}
	assert.NotEmpty(t, cyber)

	flagged := s.MergedPosts(PostFilter{FlaggedOnly: true})
	require.Len(t, flagged, 1)
	assert.Equal(t, "remote:1", flagged[0].Key)

	advice := s.MergedPosts(PostFilter{AdviceOnly: true})
	assert.Len(t, advice, 3)
	for _, p := range advice {
		assert.True(t, p.IsAdviceSeeker)
	}
	assert.Empty(t, s.MergedPosts(PostFilter{AdviceOnly: true, FlaggedOnly: true}))

	assert.Len(t, s.MergedPosts(PostFilter{Search: "EXCLUSION"}), 1)
	assert.Len(t, s.MergedPosts(PostFilter{Search: "hallways"}), 1)
	assert.Empty(t, s.MergedPosts(PostFilter{Search: "nothing matches this"}))
}

func TestFetchReports_FailuresKeepPreviousData(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Return([]models.IncidentReport{{ID: 1, Title: "first"}}, nil).Once()
	api.On("GetReports", mock.Anything, "tok").Return(nil, &remote.StatusError{Op: "fetch reports", StatusCode: 401}).Once()
	api.On("GetReports", mock.Anything, "tok").Return(nil, errors.New("dial tcp: connection refused")).Once()
	api.On("GetReports", mock.Anything, "tok").Return(nil, &remote.StatusError{Op: "fetch reports", StatusCode: 500}).Once()
	s := newTestStore(api, admin)

	_, err := s.FetchReports(context.Background())
	require.NoError(t, err)

	_, err = s.FetchReports(context.Background())
	var authErr *AuthRequiredError
	assert.True(t, errors.As(err, &authErr))

	_, err = s.FetchReports(context.Background())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))

	_, err = s.FetchReports(context.Background())
	assert.True(t, errors.As(err, &netErr))
	assert.False(t, errors.As(err, &authErr))

	merged := s.MergedReports(ReportFilter{})
	require.Len(t, merged, 1)
	assert.Equal(t, "first", merged[0].Type)
}

func TestFetchRemoteReport(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReport", mock.Anything, int64(5), "tok").Return(&models.IncidentReport{ID: 5, Title: "Threats", Urgency: "low"}, nil)
	api.On("GetReport", mock.Anything, int64(6), "tok").Return(nil, &remote.StatusError{Op: "fetch report", StatusCode: 404})
	api.On("GetReport", mock.Anything, int64(7), "tok").Return(nil, &remote.StatusError{Op: "fetch report", StatusCode: 401})
	s := newTestStore(api, admin)

	r, err := s.FetchRemoteReport(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Threats", r.Type)
	assert.Equal(t, models.SeverityLow, r.Severity)
	assert.Empty(t, s.MergedReports(ReportFilter{}))

	_, err = s.FetchRemoteReport(context.Background(), 6)
	assert.Equal(t, ErrNotFound, err)

	_, err = s.FetchRemoteReport(context.Background(), 7)
	var authErr *AuthRequiredError
	assert.True(t, errors.As(err, &authErr))
}

func TestRefresh_CombinesErrors(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "").Return(nil, &remote.StatusError{Op: "fetch reports", StatusCode: 401})
	api.On("GetPosts", mock.Anything).Return(nil, errors.New("timeout"))
	s := newTestStore(api, visitor)

	err := s.Refresh(context.Background())
	require.Error(t, err)
	var authErr *AuthRequiredError
	assert.True(t, errors.As(err, &authErr))
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestStats(t *testing.T) {
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Return([]models.IncidentReport{{ID: 1, Status: "resolved"}, {ID: 2, Status: "Escalated"}}, nil)
	s := newTestStore(api, admin, WithDemoData())
	_, err := s.FetchReports(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 7, New: 2, InProgress: 2, Resolved: 2}, s.Stats())
}

func TestFetch_LateResponseAfterCloseIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return([]models.IncidentReport{{ID: 1}}, nil)
	s := newTestStore(api, admin)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.FetchReports(context.Background())
	}()

	<-entered
	s.Close()
	close(release)
	<-done

	assert.False(t, s.Active())
	assert.Empty(t, s.MergedReports(ReportFilter{}))
}

func TestFetch_SlowResponseOverwritesFresherOne(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := new(mocks.API)
	api.On("GetReports", mock.Anything, "tok").Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return([]models.IncidentReport{{ID: 1, Title: "stale"}}, nil).Once()
	api.On("GetReports", mock.Anything, "tok").Return([]models.IncidentReport{{ID: 1, Title: "fresh"}}, nil).Once()
	s := newTestStore(api, admin)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.FetchReports(context.Background())
	}()
	<-entered

	_, err := s.FetchReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", s.MergedReports(ReportFilter{})[0].Type)

	close(release)
	wg.Wait()

	// last response to arrive wins
	assert.Equal(t, "stale", s.MergedReports(ReportFilter{})[0].Type)
}
