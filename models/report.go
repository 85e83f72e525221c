package models

import "strings"

// Status is the triage state of a report
type Status string

// Report statuses as shown on the dashboards
const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Statuses lists every status a moderator can assign
var Statuses = []Status{StatusNew, StatusInProgress, StatusResolved}

// ParseStatus matches s against the known statuses ignoring case, spaces, dashes and underscores
func ParseStatus(s string) (Status, bool) {
	want := normalizeStatus(s)
	for _, st := range Statuses {
		if normalizeStatus(string(st)) == want {
			return st, true
		}
	}
	return "", false
}

// Equal reports whether s and other name the same status, ignoring case and separators
func (s Status) Equal(other string) bool {
	return normalizeStatus(string(s)) == normalizeStatus(other)
}

func normalizeStatus(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Severity is the urgency a reporter attached to an incident
type Severity string

// Report severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Report holds the structure of an incident report as rendered on the dashboards
type Report struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Platform    string   `json:"platform"`
	Status      Status   `json:"status"`
	Severity    Severity `json:"severity"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	// RemoteID is the backend id of a locally submitted report, zero until the backend accepted it.
	RemoteID int64 `json:"remoteId,omitempty"`
}

// ReportInput is the payload a student submits to report an incident. The JSON names match the
// backend's POST /api/reports body.
type ReportInput struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,min=10"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency" validate:"omitempty,oneof=low medium high"`
	ReportedBy  string `json:"reportedBy,omitempty"`
}

// IncidentReport holds the structure of a report as the backend returns it
type IncidentReport struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency"`
	Status      string `json:"status,omitempty"`
	ReportedBy  string `json:"reportedBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ToReport maps a backend report onto the dashboard shape
func (ir IncidentReport) ToReport() Report {
	status := StatusNew
	if ir.Status != "" {
		if st, ok := ParseStatus(ir.Status); ok {
			status = st
		} else {
			// keep whatever the backend says
			status = Status(ir.Status)
		}
	}
	date := ir.CreatedAt
	if len(date) > len("2006-01-02") {
		date = date[:len("2006-01-02")]
	}
	return Report{
		ID:          ir.ID,
		Type:        ir.Title,
		Platform:    ir.Location,
		Status:      status,
		Severity:    Severity(strings.ToLower(ir.Urgency)),
		Date:        date,
		Description: ir.Description,
	}
}
