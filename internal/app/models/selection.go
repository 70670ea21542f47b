package models

import "time"

// CourseSelection represents a student's preselection: exactly two
// courses, at most one active selection per student (unique student_id).
type CourseSelection struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	SelectionDate time.Time `json:"selectionDate" db:"selection_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	SelectedCourses []Course `json:"selectedCourses,omitempty"`
	Student         *Student `json:"student,omitempty"`
}
