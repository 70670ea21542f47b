package dto

import "time"

// CreateCourseRequest is the payload for course creation
type CreateCourseRequest struct {
	Name     string `json:"name" binding:"required" example:"Programación en Go"`
	Capacity int    `json:"capacity" binding:"required,min=1" example:"30"`
}

// UpdateCourseRequest is the payload for course updates
type UpdateCourseRequest struct {
	Name     string `json:"name" binding:"required" example:"Programación en Go"`
	Capacity int    `json:"capacity" binding:"required,min=1" example:"30"`
}

// CourseResponse is the public representation of a course
type CourseResponse struct {
	ID        int64     `json:"id" example:"3"`
	Name      string    `json:"name" example:"Programación en Go"`
	Capacity  int       `json:"capacity" example:"30"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminCourseResponse is a course with enrollment figures for management views
type AdminCourseResponse struct {
	ID             int64     `json:"id" example:"3"`
	Name           string    `json:"name" example:"Programación en Go"`
	Capacity       int       `json:"capacity" example:"30"`
	Selections     int       `json:"selections" example:"12"`
	AvailableSpots int       `json:"availableSpots" example:"18"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CoursePopularity describes demand for a single course
type CoursePopularity struct {
	ID         int64  `json:"id" example:"3"`
	Name       string `json:"name" example:"Programación en Go"`
	Capacity   int    `json:"capacity" example:"30"`
	Selections int    `json:"selections" example:"12"`
	Popularity int    `json:"popularity" example:"40"`
}

// CourseStatsResponse is the public demand summary across courses
type CourseStatsResponse struct {
	TotalCourses    int                `json:"totalCourses" example:"49"`
	TotalSelections int                `json:"totalSelections" example:"120"`
	TopCourses      []CoursePopularity `json:"topCourses"`
}
