package store

import (
	"strings"

	"github.com/cyberguard/console/models"
)

// filterAll matches every record
const filterAll = "all"

// ReportFilter narrows the merged report view. Empty fields and "all" match everything.
type ReportFilter struct {
	Status   string
	Severity string
}

func (f ReportFilter) match(r models.Report) bool {
	if f.Status != "" && !strings.EqualFold(f.Status, filterAll) && !r.Status.Equal(f.Status) {
		return false
	}
	if f.Severity != "" && !strings.EqualFold(f.Severity, filterAll) && !strings.EqualFold(string(r.Severity), f.Severity) {
		return false
	}
	return true
}

// PostFilter narrows the merged forum view
type PostFilter struct {
	// Category matches the raw category or its display name, case-insensitively
	Category string
	// Search matches title, content or a tag, case-insensitively
	Search      string
	FlaggedOnly bool
	// AdviceOnly keeps posts whose author is seeking advice
	AdviceOnly bool
}

func (f PostFilter) match(p models.ForumPost) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, filterAll) && !models.MatchesCategory(p.Category, f.Category) {
		return false
	}
	if f.FlaggedOnly && !p.Flagged {
		return false
	}
	if f.AdviceOnly && !p.IsAdviceSeeker {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// MergedReports returns local reports followed by remote reports, filtered. The result is a copy.
func (s *Store) MergedReports(filter ReportFilter) []models.ReportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ReportRecord, 0, len(s.localReports)+len(s.remoteReports))
	for _, r := range s.localReports {
		if filter.match(r) {
			out = append(out, models.NewReportRecord(models.OriginLocal, r))
		}
	}
	for _, r := range s.remoteReports {
		if filter.match(r) {
			out = append(out, models.NewReportRecord(models.OriginRemote, r))
		}
	}
	return out
}

// MergedPosts returns local posts followed by remote posts, filtered. The result is a copy.
func (s *Store) MergedPosts(filter PostFilter) []models.PostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PostRecord, 0, len(s.localPosts)+len(s.remotePosts))
	for _, p := range s.localPosts {
		if filter.match(p) {
			out = append(out, models.NewPostRecord(models.OriginLocal, copyPost(p)))
		}
	}
	for _, p := range s.remotePosts {
		if filter.match(p) {
			out = append(out, models.NewPostRecord(models.OriginRemote, copyPost(p)))
		}
	}
	return out
}
