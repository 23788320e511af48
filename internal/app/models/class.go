package models

import "time"

// Class defines the class model based on the 'classes' table.
// CurrentStudents is a denormalized counter; it is only ever written inside
// the same transaction as the student row it reflects.
type Class struct {
	ID                int64     `json:"id" db:"id" example:"5"`
	Code              string    `json:"code" db:"code" example:"10A"` // Unique per school
	Name              string    `json:"name" db:"name" example:"Grade 10 Section A"`
	GradeLevel        int       `json:"gradeLevel" db:"grade_level" example:"10"`
	AcademicYear      string    `json:"academicYear" db:"academic_year" example:"2023-2024"`
	HomeroomTeacherID *int64    `json:"homeroomTeacherId,omitempty" db:"homeroom_teacher_id" example:"12"`
	MaxStudents       int       `json:"maxStudents" db:"max_students" example:"30"`
	CurrentStudents   int       `json:"currentStudents" db:"current_students" example:"24"`
	SchoolID          int64     `json:"schoolId" db:"school_id" example:"1"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	HomeroomTeacher *User `json:"homeroomTeacher,omitempty"`
}
