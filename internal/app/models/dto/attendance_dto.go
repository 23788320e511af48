package dto

// RecordAttendanceRequest records one student's attendance for one day.
// Recording the same (student, date) again updates the existing row.
type RecordAttendanceRequest struct {
	StudentID int64  `json:"studentId" binding:"required" example:"1"`
	ClassID   int64  `json:"classId" binding:"required" example:"5"`
	Date      string `json:"date" binding:"required" example:"2024-03-11"` // YYYY-MM-DD
	Status    string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED" example:"PRESENT"`
	Note      string `json:"note,omitempty"`
}
