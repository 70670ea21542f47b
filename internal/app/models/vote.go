package models

import "time"

// Vote represents a satisfaction vote. A student may cast exactly one
// vote per category (unique (student_id, category)).
type Vote struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Category  string    `json:"category" db:"category"`
	Option    string    `json:"option" db:"option"`
	Comment   *string   `json:"comment,omitempty" db:"comment"` // Nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Student *Student `json:"student,omitempty"`
}
