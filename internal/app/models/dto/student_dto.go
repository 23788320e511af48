package dto

// CreateStudentRequest creates a new student. ClassID is optional; when set,
// the enrollment counts against the class capacity.
type CreateStudentRequest struct {
	Code        string `json:"code" binding:"required" example:"STU-0042"`
	FullName    string `json:"fullName" binding:"required" example:"Alex Nguyen"`
	DateOfBirth string `json:"dateOfBirth" binding:"required" example:"2010-09-15"` // YYYY-MM-DD
	Gender      string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER" example:"FEMALE"`
	ClassID     *int64 `json:"classId,omitempty" example:"5"`
	ParentID    *int64 `json:"parentId,omitempty" example:"9"`
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
}

// UpdateStudentRequest partially updates a student; nil fields keep the
// existing value.
type UpdateStudentRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" example:"2010-09-15"`
	Gender      *string `json:"gender,omitempty" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	ParentID    *int64  `json:"parentId,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE GRADUATED TRANSFERRED"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
}

// TransferStudentRequest moves a student between classes. A null classId
// removes the student from their current class.
type TransferStudentRequest struct {
	ClassID *int64 `json:"classId" example:"6"`
}
