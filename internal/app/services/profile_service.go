package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/auth"
	"github.com/glon/summercourse/internal/pkg/helpers"
	"github.com/glon/summercourse/internal/pkg/validation"
)

// ProfileService handles student profiles and user administration
type ProfileService struct {
	users      UserStore
	students   StudentStore
	selections SelectionStore
	logger     zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(users UserStore, students StudentStore, selections SelectionStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:      users,
		students:   students,
		selections: selections,
		logger:     logger,
	}
}

// GetOwnProfile returns the calling student's profile with the names of
// any preselected courses.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Perfil de estudiante no encontrado")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	profile := toStudentProfile(student)

	selection, err := s.selections.GetByStudentID(ctx, student.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSelectionNotFound) {
			return nil, fmt.Errorf("error retrieving selection: %w", err)
		}
		return profile, nil
	}
	for _, course := range selection.SelectedCourses {
		profile.Courses = append(profile.Courses, course.Name)
	}

	return profile, nil
}

// UpdateOwnProfile applies a partial update to the calling student's profile
func (s *ProfileService) UpdateOwnProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Perfil de estudiante no encontrado")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewBadRequestError("El nombre no puede estar vacío")
		}
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, apperrors.NewBadRequestError("El apellido no puede estar vacío")
		}
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Age != nil {
		student.Age = *req.Age
	}
	if req.Major != nil {
		student.Major = strings.TrimSpace(*req.Major)
	}
	if req.Semester != nil {
		student.Semester = *req.Semester
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("Student profile updated")
	return toStudentProfile(student), nil
}

// ListProfiles returns a page of user accounts for administration,
// optionally filtered by role and a free-text search.
func (s *ProfileService) ListProfiles(ctx context.Context, role, search string, page, pageSize int) ([]dto.AdminProfileEntry, dto.PaginationInfo, error) {
	if role != "" && !models.RoleType(role).IsValid() {
		return nil, dto.PaginationInfo{}, apperrors.NewBadRequestError("Rol inválido")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	users, total, err := s.users.ListProfiles(ctx, role, strings.TrimSpace(search), offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing profiles: %w", err)
	}

	entries := make([]dto.AdminProfileEntry, 0, len(users))
	for _, user := range users {
		entry := dto.AdminProfileEntry{
			ID:        user.ID,
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		}
		if user.Student != nil {
			profile := toStudentProfile(user.Student)
			profile.Email = user.Email
			entry.Student = profile
		}
		entries = append(entries, entry)
	}

	return entries, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// CreateUser creates a user account administratively, with an optional
// student record.
func (s *ProfileService) CreateUser(ctx context.Context, req *dto.AdminCreateUserRequest) (*dto.AdminProfileEntry, error) {
	role := models.RoleType(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewBadRequestError("Rol inválido")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("El correo electrónico no es válido")
	}

	if role == models.RoleStudent && req.StudentData == nil {
		return nil, apperrors.NewBadRequestError("Los datos de estudiante son obligatorios para el rol STUDENT")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, Password: hashed, Role: role}

	var student *models.Student
	if req.StudentData != nil {
		if !validation.IsValidIDCard(req.StudentData.IDCard) {
			return nil, apperrors.NewBadRequestError("La cédula debe contener entre 6 y 10 dígitos")
		}
		student = &models.Student{
			Name:     strings.TrimSpace(req.StudentData.Name),
			LastName: strings.TrimSpace(req.StudentData.LastName),
			IDCard:   strings.TrimSpace(req.StudentData.IDCard),
			Age:      req.StudentData.Age,
			Major:    strings.TrimSpace(req.StudentData.Major),
			Semester: req.StudentData.Semester,
		}
	}

	if err := s.users.CreateWithStudent(ctx, user, student); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "El correo ya está registrado")
		case errors.Is(err, apperrors.ErrIDCardAlreadyExists):
			return nil, apperrors.NewCustomError(apperrors.ErrIDCardAlreadyExists, "La cédula ya está registrada")
		default:
			return nil, fmt.Errorf("error creating user: %w", err)
		}
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created by administrator")

	entry := &dto.AdminProfileEntry{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if user.Student != nil {
		profile := toStudentProfile(user.Student)
		profile.Email = user.Email
		entry.Student = profile
	}
	return entry, nil
}

func toStudentProfile(student *models.Student) *dto.StudentProfileResponse {
	profile := &dto.StudentProfileResponse{
		ID:       student.ID,
		Name:     student.Name,
		LastName: student.LastName,
		IDCard:   student.IDCard,
		Age:      student.Age,
		Major:    student.Major,
		Semester: student.Semester,
	}
	if student.User != nil {
		profile.Email = student.User.Email
	}
	return profile
}
