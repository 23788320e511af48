package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64         `json:"id" db:"id" example:"1"`
	Code        string        `json:"code" db:"code" example:"STU-0042"` // Unique per school
	FullName    string        `json:"fullName" db:"full_name" example:"Alex Nguyen"`
	DateOfBirth time.Time     `json:"dateOfBirth" db:"date_of_birth" example:"2010-09-15T00:00:00Z"`
	Gender      string        `json:"gender" db:"gender" example:"FEMALE"`
	ClassID     *int64        `json:"classId,omitempty" db:"class_id" example:"5"`   // Nullable, set when enrolled
	ParentID    *int64        `json:"parentId,omitempty" db:"parent_id" example:"9"` // Nullable, links to a PARENT user
	SchoolID    int64         `json:"schoolId" db:"school_id" example:"1"`
	Status      StudentStatus `json:"status" db:"status" example:"ACTIVE"`
	Email       *string       `json:"email,omitempty" db:"email"` // Matches a STUDENT user account when present
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Class  *Class `json:"class,omitempty"`
	Parent *User  `json:"parent,omitempty"`
}
