package dto

// RegisterStudentRequest is the payload for student self-registration
type RegisterStudentRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria.lopez@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"S3cr3tPass"`
	Name     string `json:"name" binding:"required" example:"María"`
	LastName string `json:"lastName" binding:"required" example:"López"`
	IDCard   string `json:"idCard" binding:"required" example:"12345678"`
	Age      int    `json:"age" binding:"required,min=15,max=100" example:"21"`
	Major    string `json:"major" binding:"required" example:"Ingeniería de Sistemas"`
	Semester int    `json:"semester" binding:"required,min=1,max=20" example:"5"`
}

// LoginRequest is the payload for credential authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria.lopez@example.com"`
	Password string `json:"password" binding:"required" example:"S3cr3tPass"`
}

// RefreshTokenRequest is the payload for access token renewal
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"b94d27b9-934d-4e08-a52e-52d7da7dabfa"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *UserSummary `json:"user,omitempty"`
}

// UserSummary is the authenticated identity returned alongside tokens
type UserSummary struct {
	ID    int64  `json:"id" example:"7"`
	Email string `json:"email" example:"maria.lopez@example.com"`
	Role  string `json:"role" example:"STUDENT"`
	Name  string `json:"name,omitempty" example:"María López"`
}
