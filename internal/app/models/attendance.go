package models

import "time"

// Attendance defines one per-student per-day attendance record based on the
// 'attendance' table. One row per (student_id, date); re-recording a day
// updates the existing row.
type Attendance struct {
	ID         int64            `json:"id" db:"id" example:"11"`
	StudentID  int64            `json:"studentId" db:"student_id" example:"1"`
	ClassID    int64            `json:"classId" db:"class_id" example:"5"`
	Date       time.Time        `json:"date" db:"date" example:"2024-03-11T00:00:00Z"`
	Status     AttendanceStatus `json:"status" db:"status" example:"PRESENT"`
	Note       *string          `json:"note,omitempty" db:"note"`
	RecordedBy int64            `json:"recordedBy" db:"recorded_by" example:"12"`
	SchoolID   int64            `json:"schoolId" db:"school_id" example:"1"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}

// AttendanceSummary holds the per-status counts for one student.
type AttendanceSummary struct {
	StudentID int64 `json:"studentId"`
	Present   int   `json:"present"`
	Absent    int   `json:"absent"`
	Late      int   `json:"late"`
	Excused   int   `json:"excused"`
	Total     int   `json:"total"`
}
