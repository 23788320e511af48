package models

import "time"

// School defines the school model based on the 'schools' table
type School struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Riverside High School"`
	Code      string    `json:"code" db:"code" example:"RHS"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
