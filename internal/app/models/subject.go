package models

import "time"

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID        int64     `json:"id" db:"id" example:"2"`
	Code      string    `json:"code" db:"code" example:"MATH10"` // Unique per school
	Name      string    `json:"name" db:"name" example:"Mathematics"`
	Credits   int       `json:"credits" db:"credits" example:"3"`
	Color     string    `json:"color" db:"color" example:"#4F86C6"`
	SchoolID  int64     `json:"schoolId" db:"school_id" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
