package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cyberguard/console/models"
)

// ReportAPI contains the incident report endpoints of the backend. All of them answer 401 when
// the bearer token is missing or invalid.
type ReportAPI interface {
	GetReports(ctx context.Context, token string) ([]models.IncidentReport, error)
	CreateReport(ctx context.Context, report models.ReportInput, token string) (*models.IncidentReport, error)
	GetReport(ctx context.Context, id int64, token string) (*models.IncidentReport, error)
}

// GetReports fetches every incident report
func (c *Client) GetReports(ctx context.Context, token string) ([]models.IncidentReport, error) {
	var reports []models.IncidentReport
	if err := c.do(ctx, "fetch reports", http.MethodGet, "/api/reports", token, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// CreateReport submits a new incident report
func (c *Client) CreateReport(ctx context.Context, report models.ReportInput, token string) (*models.IncidentReport, error) {
	created := &models.IncidentReport{}
	if err := c.do(ctx, "create report", http.MethodPost, "/api/reports", token, report, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetReport fetches a single incident report
func (c *Client) GetReport(ctx context.Context, id int64, token string) (*models.IncidentReport, error) {
	report := &models.IncidentReport{}
	if err := c.do(ctx, "fetch report", http.MethodGet, fmt.Sprintf("/api/reports/%d", id), token, nil, report); err != nil {
		return nil, err
	}
	return report, nil
}
