package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/models"
	"github.com/cyberguard/console/store"
)

// ReportStore is the part of the store the report handlers use
type ReportStore interface {
	MergedReports(filter store.ReportFilter) []models.ReportRecord
	Report(key models.Key) (models.ReportRecord, bool)
	SubmitReport(ctx context.Context, in models.ReportInput) (models.Report, error)
	UpdateStatus(key models.Key, status string) error
	FetchRemoteReport(ctx context.Context, id int64) (models.Report, error)
	Stats() store.Stats
	Refresh(ctx context.Context) error
}

// Report exposes the merged report view
type Report struct {
	Store ReportStore
}

// StatusUpdate is the body of a report status change
type StatusUpdate struct {
	Status string `json:"status"`
}

// ReportsHandler returns the merged reports, optionally filtered by status and severity
func (rh Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.ReportFilter{
		Status:   r.URL.Query().Get("status"),
		Severity: r.URL.Query().Get("severity"),
	}
	writeJSON(w, http.StatusOK, rh.Store.MergedReports(filter))
}

// ReportStatsHandler returns the report counters of the dashboards
func (rh Report) ReportStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rh.Store.Stats())
}

// ReportByKeyHandler returns a single report of the merged view
func (rh Report) ReportByKeyHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromVars(r)
	if err != nil {
		config.ErrorStatus("failed to parse report key", http.StatusBadRequest, w, err)
		return
	}
	rec, ok := rh.Store.Report(key)
	if !ok {
		config.ErrorStatus("failed to get report by key", http.StatusNotFound, w, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateReportHandler submits a report. The report is kept locally even when the backend rejects
// it; the response is then a 502 that still carries the record.
func (rh Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	report, err := rh.Store.SubmitReport(r.Context(), in)
	var submitErr *store.RemoteSubmitError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, models.SubmitResponse{Record: models.NewReportRecord(models.OriginLocal, report)})
	case errors.As(err, &submitErr):
		writeJSON(w, http.StatusBadGateway, models.SubmitResponse{
			Record:  models.NewReportRecord(models.OriginLocal, report),
			Warning: err.Error(),
		})
	default:
		storeError("failed to submit report", w, r, err)
	}
}

// UpdateReportStatusHandler changes the status of a local report
func (rh Report) UpdateReportStatusHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromVars(r)
	if err != nil {
		config.ErrorStatus("failed to parse report key", http.StatusBadRequest, w, err)
		return
	}
	var body StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	if err := rh.Store.UpdateStatus(key, body.Status); err != nil {
		storeError("failed to update report status", w, r, err)
		return
	}
	rec, _ := rh.Store.Report(key)
	writeJSON(w, http.StatusOK, rec)
}

// RemoteReportHandler fetches a single report straight from the backend
func (rh Report) RemoteReportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		config.ErrorStatus("failed to parse report id", http.StatusBadRequest, w, err)
		return
	}
	report, err := rh.Store.FetchRemoteReport(r.Context(), id)
	if err != nil {
		storeError("failed to fetch remote report", w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewReportRecord(models.OriginRemote, report))
}

// RefreshHandler polls the backend once, outside the regular schedule
func (rh Report) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if err := rh.Store.Refresh(r.Context()); err != nil {
		storeError("failed to refresh from backend", w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rh.Store.Stats())
}

func keyFromVars(r *http.Request) (models.Key, error) {
	vars := mux.Vars(r)
	return models.ParseKey(vars["origin"], vars["id"])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
