package models

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// UpdateAnalysisRequest is the body of PATCH /analyses/:id
type UpdateAnalysisRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnalysisListResponse wraps a list of reports
type AnalysisListResponse struct {
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}
