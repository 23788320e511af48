package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
	RoleParent  RoleType = "PARENT"
)

// ValidRole reports whether the given string is a known role.
func ValidRole(role string) bool {
	switch RoleType(role) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// StudentStatus defines the enrollment status of a student
type StudentStatus string

const (
	StudentActive      StudentStatus = "ACTIVE"
	StudentInactive    StudentStatus = "INACTIVE"
	StudentGraduated   StudentStatus = "GRADUATED"
	StudentTransferred StudentStatus = "TRANSFERRED"
)

// ValidStudentStatus reports whether the given string is a known student status.
func ValidStudentStatus(status string) bool {
	switch StudentStatus(status) {
	case StudentActive, StudentInactive, StudentGraduated, StudentTransferred:
		return true
	}
	return false
}

// AttendanceStatus defines the status of a single attendance record
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// ValidAttendanceStatus reports whether the given string is a known attendance status.
func ValidAttendanceStatus(status string) bool {
	switch AttendanceStatus(status) {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}
