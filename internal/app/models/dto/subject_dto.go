package dto

// CreateSubjectRequest creates a new subject
type CreateSubjectRequest struct {
	Code    string `json:"code" binding:"required" example:"MATH10"`
	Name    string `json:"name" binding:"required" example:"Mathematics"`
	Credits int    `json:"credits" binding:"required,min=1" example:"3"`
	Color   string `json:"color,omitempty" example:"#4F86C6"`
}

// UpdateSubjectRequest partially updates a subject
type UpdateSubjectRequest struct {
	Name    *string `json:"name,omitempty"`
	Credits *int    `json:"credits,omitempty" binding:"omitempty,min=1"`
	Color   *string `json:"color,omitempty"`
}
