package models

import "time"

// JobResponse wraps a single job
type JobResponse struct {
	Job any `json:"job"`
}

// JobsResponse wraps a job search result
type JobsResponse struct {
	Jobs []JobListing `json:"jobs"`
}

// DeletedResponse acknowledges a removal with the id as it was requested
type DeletedResponse struct {
	Deleted string `json:"deleted"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
