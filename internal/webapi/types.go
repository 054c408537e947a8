package webapi

import "github.com/grenas405/meta-documentation/internal/adr"

// DecisionSummary is the API response for a single record in the list.
type DecisionSummary struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status string   `json:"status"`
	Date   string   `json:"date,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	File   string   `json:"file"`
}

// DecisionDetail is the API response for a single record with its parsed
// content.
type DecisionDetail struct {
	DecisionSummary
	Record adr.ADR `json:"record"`
	Body   string  `json:"body"`
}

// ChecklistSummary reports the compliance checklist state for the dashboard.
type ChecklistSummary struct {
	Path       string   `json:"path"`
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// SummaryResponse is the aggregate dashboard response: record counts per
// lifecycle status plus the checklist outcome when a checklist exists.
type SummaryResponse struct {
	TotalDecisions int               `json:"totalDecisions"`
	StatusCounts   map[string]int    `json:"statusCounts"`
	Checklist      *ChecklistSummary `json:"checklist,omitempty"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
