package dto

// CreateClassRequest creates a new class
type CreateClassRequest struct {
	Code              string `json:"code" binding:"required" example:"10A"`
	Name              string `json:"name" binding:"required" example:"Grade 10 Section A"`
	GradeLevel        int    `json:"gradeLevel" binding:"required,min=1,max=12" example:"10"`
	AcademicYear      string `json:"academicYear" binding:"required" example:"2023-2024"`
	HomeroomTeacherID *int64 `json:"homeroomTeacherId,omitempty" example:"12"`
	MaxStudents       int    `json:"maxStudents" binding:"required,min=1" example:"30"`
}

// UpdateClassRequest partially updates a class; nil fields keep the existing
// value.
type UpdateClassRequest struct {
	Name              *string `json:"name,omitempty"`
	GradeLevel        *int    `json:"gradeLevel,omitempty" binding:"omitempty,min=1,max=12"`
	AcademicYear      *string `json:"academicYear,omitempty"`
	HomeroomTeacherID *int64  `json:"homeroomTeacherId,omitempty"`
	MaxStudents       *int    `json:"maxStudents,omitempty" binding:"omitempty,min=1"`
}
