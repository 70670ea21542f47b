package models

import "time"

// Student defines the student model based on the 'students' table.
// One-to-one with User; the user_id column carries a unique constraint.
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	UserID    int64     `json:"userId" db:"user_id" example:"5"`
	Name      string    `json:"name" db:"name" example:"Ana"`
	LastName  string    `json:"lastName" db:"last_name" example:"García"`
	IDCard    string    `json:"idCard" db:"id_card" example:"27123456"`
	Age       int       `json:"age" db:"age" example:"19"`
	Major     string    `json:"major" db:"major" example:"Ingeniería en Informática"`
	Semester  int       `json:"semester" db:"semester" example:"2"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// FullName returns the display name used by rosters and reports.
func (s *Student) FullName() string {
	return s.Name + " " + s.LastName
}
