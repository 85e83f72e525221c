package store

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/remote"
)

// AddLocalReport records in as a new local report with status New and returns it. Nothing is sent
// to the backend.
func (s *Store) AddLocalReport(in models.ReportInput) models.Report {
	severity := models.Severity(in.Urgency)
	if severity == "" {
		severity = models.SeverityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Report{
		ID:          int64(len(s.localReports)) + 1,
		Type:        in.Title,
		Platform:    in.Location,
		Status:      models.StatusNew,
		Severity:    severity,
		Date:        s.now().Format("2006-01-02"),
		Description: in.Description,
	}
	s.localReports = append([]models.Report{r}, s.localReports...)
	return r
}

// SubmitReport keeps the report locally and sends it to the backend. The local copy stays even if
// the backend rejects it, in which case a RemoteSubmitError is returned along with the copy.
func (s *Store) SubmitReport(ctx context.Context, in models.ReportInput) (models.Report, error) {
	if err := validateStruct(in); err != nil {
		return models.Report{}, err
	}

	local := s.AddLocalReport(in)
	created, err := s.api.CreateReport(ctx, in, s.role.Token())
	if err != nil {
		zap.S().Warnw("report kept locally, backend rejected it", "id", local.ID, "error", err)
		return local, &RemoteSubmitError{Op: "submit report", Err: writeError("create report", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.localReports {
		if s.localReports[i].ID == local.ID {
			s.localReports[i].RemoteID = created.ID
			local = s.localReports[i]
			break
		}
	}
	return local, nil
}

// FetchReports fetches every report from the backend and, on success, replaces the remote
// collection with them. On failure the previous collection is kept.
func (s *Store) FetchReports(ctx context.Context) ([]models.Report, error) {
	incoming, err := s.api.GetReports(ctx, s.role.Token())
	if err != nil {
		err = readError("fetch reports", err)
		zap.S().Warnw("failed to fetch reports", "error", err)
		return nil, err
	}

	reports := make([]models.Report, 0, len(incoming))
	seen := make(map[int64]bool, len(incoming))
	for _, ir := range incoming {
		if seen[ir.ID] {
			zap.S().Warnw("backend returned a duplicate report id, keeping the first", "id", ir.ID)
			continue
		}
		seen[ir.ID] = true
		reports = append(reports, ir.ToReport())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		zap.S().Debugw("discarding reports response, store closed", "count", len(reports))
		return reports, nil
	}
	s.remoteReports = reports
	return copyReports(reports), nil
}

// FetchRemoteReport fetches a single report from the backend without touching the store
func (s *Store) FetchRemoteReport(ctx context.Context, id int64) (models.Report, error) {
	ir, err := s.api.GetReport(ctx, id, s.role.Token())
	if err != nil {
		var se *remote.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return models.Report{}, ErrNotFound
		}
		return models.Report{}, readError("fetch report", err)
	}
	return ir.ToReport(), nil
}

// UpdateStatus sets the status of a local report. Only admins may do this. Remote reports are not
// changed; the backend has no endpoint for it.
func (s *Store) UpdateStatus(key models.Key, status string) error {
	if !s.role.IsAdmin() {
		return &ForbiddenError{Op: "update status"}
	}
	if err := validateStruct(statusUpdate{Status: status}); err != nil {
		return err
	}
	if key.Origin != models.OriginLocal {
		if _, ok := s.Report(key); !ok {
			return ErrNotFound
		}
		return ErrReadOnly
	}
	st, _ := models.ParseStatus(status)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.localReports {
		if s.localReports[i].ID == key.ID {
			s.localReports[i].Status = st
			zap.S().Infow("report status updated", "key", key.String(), "status", st)
			return nil
		}
	}
	return ErrNotFound
}

// Report looks a report up by its composite key
func (s *Store) Report(key models.Key) (models.ReportRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := s.remoteReports
	if key.Origin == models.OriginLocal {
		reports = s.localReports
	}
	for _, r := range reports {
		if r.ID == key.ID {
			return models.NewReportRecord(key.Origin, r), true
		}
	}
	return models.ReportRecord{}, false
}

func copyReports(in []models.Report) []models.Report {
	out := make([]models.Report, len(in))
	copy(out, in)
	return out
}
