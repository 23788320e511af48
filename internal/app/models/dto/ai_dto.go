package dto

// AnalyzeRequest forwards a structured task to the external AI service
type AnalyzeRequest struct {
	Task    string                 `json:"task" binding:"required" example:"attendance_summary"`
	Data    map[string]interface{} `json:"data" binding:"required"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// AnalyzeResult is the normalized shape of the AI service's answer
type AnalyzeResult struct {
	Success        bool        `json:"success"`
	Response       interface{} `json:"response,omitempty"`
	Confidence     *float64    `json:"confidence,omitempty"`
	ProcessingTime *float64    `json:"processing_time,omitempty"`
	Suggestions    []string    `json:"suggestions,omitempty"`
	Error          string      `json:"error,omitempty"`
}
