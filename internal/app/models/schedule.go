package models

import "time"

// Schedule defines one timetable slot based on the 'schedules' table.
// A class and a teacher each occupy at most one subject per
// (day_of_week, period, semester, academic_year); the schema enforces both
// tuples with unique constraints.
type Schedule struct {
	ID           int64     `json:"id" db:"id" example:"7"`
	ClassID      int64     `json:"classId" db:"class_id" example:"5"`
	SubjectID    int64     `json:"subjectId" db:"subject_id" example:"2"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id" example:"12"`
	DayOfWeek    int       `json:"dayOfWeek" db:"day_of_week" example:"1"` // 1 = Monday ... 7 = Sunday
	Period       int       `json:"period" db:"period" example:"3"`
	Room         string    `json:"room" db:"room" example:"B-204"`
	Semester     string    `json:"semester" db:"semester" example:"1"`
	AcademicYear string    `json:"academicYear" db:"academic_year" example:"2023-2024"`
	SchoolID     int64     `json:"schoolId" db:"school_id" example:"1"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
	Teacher *User    `json:"teacher,omitempty"`
}
