package models

// HealthCheckResponse returns the health check response body
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
