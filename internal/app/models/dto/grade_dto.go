package dto

// SubmitGradeRequest writes one component score. Scores use a 0-10 scale; the
// derived percentage is the 0-100 view.
type SubmitGradeRequest struct {
	StudentID    int64   `json:"studentId" binding:"required" example:"1"`
	SubjectID    int64   `json:"subjectId" binding:"required" example:"2"`
	ClassID      int64   `json:"classId" binding:"required" example:"5"`
	GradeType    string  `json:"gradeType" binding:"required,oneof=oral quiz1 quiz2 oneHour midterm final" example:"midterm"`
	Value        float64 `json:"value" binding:"min=0,max=10" example:"8.5"`
	Semester     string  `json:"semester" binding:"required" example:"1"`
	AcademicYear string  `json:"academicYear" binding:"required" example:"2023-2024"`
}

// GradeFilter narrows grade list queries
type GradeFilter struct {
	StudentID    *int64 `form:"studentId"`
	SubjectID    *int64 `form:"subjectId"`
	ClassID      *int64 `form:"classId"`
	Semester     string `form:"semester"`
	AcademicYear string `form:"academicYear"`
}
