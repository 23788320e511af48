package dto

// CreateScheduleRequest creates a new timetable slot
type CreateScheduleRequest struct {
	ClassID      int64  `json:"classId" binding:"required" example:"5"`
	SubjectID    int64  `json:"subjectId" binding:"required" example:"2"`
	TeacherID    int64  `json:"teacherId" binding:"required" example:"12"`
	DayOfWeek    int    `json:"dayOfWeek" binding:"required,min=1,max=7" example:"1"`
	Period       int    `json:"period" binding:"required,min=1,max=12" example:"3"`
	Room         string `json:"room,omitempty" example:"B-204"`
	Semester     string `json:"semester" binding:"required" example:"1"`
	AcademicYear string `json:"academicYear" binding:"required" example:"2023-2024"`
}

// UpdateScheduleRequest partially updates a timetable slot; conflict checks
// re-run against the merged row.
type UpdateScheduleRequest struct {
	SubjectID *int64  `json:"subjectId,omitempty"`
	TeacherID *int64  `json:"teacherId,omitempty"`
	DayOfWeek *int    `json:"dayOfWeek,omitempty" binding:"omitempty,min=1,max=7"`
	Period    *int    `json:"period,omitempty" binding:"omitempty,min=1,max=12"`
	Room      *string `json:"room,omitempty"`
}
