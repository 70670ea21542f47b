package models

import "time"

// Course represents a summer course students can preselect.
// Capacity is advisory at selection time; it is only enforced against
// current enrollment on admin edits.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
