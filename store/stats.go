package store

import "github.com/cyberguard/console/models"

// Stats are the report counters shown on the dashboards
type Stats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

// Stats counts the merged reports by status. Unknown statuses only count towards Total.
func (s *Store) Stats() Stats {
	var st Stats
	for _, r := range s.MergedReports(ReportFilter{}) {
		st.Total++
		switch {
		case r.Status.Equal(string(models.StatusNew)):
			st.New++
		case r.Status.Equal(string(models.StatusInProgress)):
			st.InProgress++
		case r.Status.Equal(string(models.StatusResolved)):
			st.Resolved++
		}
	}
	return st
}
