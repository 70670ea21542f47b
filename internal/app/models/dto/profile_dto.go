package dto

import "time"

// StudentProfileResponse is the authenticated student's own profile
type StudentProfileResponse struct {
	ID       int64  `json:"id" example:"4"`
	Email    string `json:"email" example:"maria.lopez@example.com"`
	Name     string `json:"name" example:"María"`
	LastName string `json:"lastName" example:"López"`
	IDCard   string `json:"idCard" example:"12345678"`
	Age      int    `json:"age" example:"21"`
	Major    string `json:"major" example:"Ingeniería de Sistemas"`
	Semester int    `json:"semester" example:"5"`

	// Courses holds the names of the student's preselected courses, if any
	Courses []string `json:"courses,omitempty"`
}

// UpdateProfileRequest is the payload for partial profile updates.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" example:"María"`
	LastName *string `json:"lastName,omitempty" example:"López"`
	Age      *int    `json:"age,omitempty" binding:"omitempty,min=15,max=100" example:"22"`
	Major    *string `json:"major,omitempty" example:"Ingeniería de Sistemas"`
	Semester *int    `json:"semester,omitempty" binding:"omitempty,min=1,max=20" example:"6"`
}

// AdminProfileEntry is one user row in the administration profile listing
type AdminProfileEntry struct {
	ID        int64                   `json:"id" example:"7"`
	Email     string                  `json:"email" example:"maria.lopez@example.com"`
	Role      string                  `json:"role" example:"STUDENT"`
	CreatedAt time.Time               `json:"createdAt"`
	Student   *StudentProfileResponse `json:"student,omitempty"`
}

// AdminCreateStudentData is the optional student record attached to a new user
type AdminCreateStudentData struct {
	Name     string `json:"name" binding:"required" example:"María"`
	LastName string `json:"lastName" binding:"required" example:"López"`
	IDCard   string `json:"idCard" binding:"required" example:"12345678"`
	Age      int    `json:"age" binding:"required,min=15,max=100" example:"21"`
	Major    string `json:"major" binding:"required" example:"Ingeniería de Sistemas"`
	Semester int    `json:"semester" binding:"required,min=1,max=20" example:"5"`
}

// AdminCreateUserRequest is the payload for administrative user creation
type AdminCreateUserRequest struct {
	Email       string                  `json:"email" binding:"required,email" example:"nuevo@example.com"`
	Password    string                  `json:"password" binding:"required,min=8" example:"S3cr3tPass"`
	Role        string                  `json:"role" binding:"required,oneof=STUDENT PROFESSOR ADMIN" example:"STUDENT"`
	StudentData *AdminCreateStudentData `json:"studentData,omitempty"`
}
