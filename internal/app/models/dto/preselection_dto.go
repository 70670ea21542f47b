package dto

import "time"

// PreselectionRequest is the payload for creating or replacing a course preselection
type PreselectionRequest struct {
	CourseIDs []int64 `json:"courseIds" binding:"required" example:"3,17"`
}

// SelectionResponse is a student's registered preselection
type SelectionResponse struct {
	ID            int64            `json:"id" example:"9"`
	SelectionDate time.Time        `json:"selectionDate"`
	Courses       []CourseResponse `json:"courses"`
}

// PreselectionStatusResponse is the student-facing preselection page payload
type PreselectionStatusResponse struct {
	Student          string             `json:"student" example:"María López"`
	Courses          []CourseResponse   `json:"courses"`
	HasPreselection  bool               `json:"hasPreselection" example:"true"`
	CurrentSelection *SelectionResponse `json:"currentSelection,omitempty"`
}

// AdminSelectionEntry is a preselection with its owner, for management views
type AdminSelectionEntry struct {
	ID            int64            `json:"id" example:"9"`
	SelectionDate time.Time        `json:"selectionDate"`
	Student       StudentSummary   `json:"student"`
	Courses       []CourseResponse `json:"courses"`
}

// StudentSummary identifies a student in listings
type StudentSummary struct {
	ID       int64  `json:"id" example:"4"`
	Name     string `json:"name" example:"María"`
	LastName string `json:"lastName" example:"López"`
	IDCard   string `json:"idCard" example:"12345678"`
	Email    string `json:"email" example:"maria.lopez@example.com"`
}
