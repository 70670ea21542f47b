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
	"github.com/glon/summercourse/internal/pkg/helpers"
)

// requiredCourseCount is how many courses a preselection must contain
const requiredCourseCount = 2

// PreselectionService handles student course preselections
type PreselectionService struct {
	selections SelectionStore
	courses    CourseStore
	students   StudentStore
	logger     zerolog.Logger
}

// NewPreselectionService creates a new PreselectionService
func NewPreselectionService(selections SelectionStore, courses CourseStore, students StudentStore, logger zerolog.Logger) *PreselectionService {
	return &PreselectionService{
		selections: selections,
		courses:    courses,
		students:   students,
		logger:     logger,
	}
}

// GetStatus returns the course catalog together with the student's current
// preselection, if any.
func (s *PreselectionService) GetStatus(ctx context.Context, userID int64) (*dto.PreselectionStatusResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	resp := &dto.PreselectionStatusResponse{
		Student: student.FullName(),
		Courses: toCourseResponses(courses),
	}

	selection, err := s.selections.GetByStudentID(ctx, student.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSelectionNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("error retrieving selection: %w", err)
	}

	resp.HasPreselection = true
	resp.CurrentSelection = toSelectionResponse(selection)
	return resp, nil
}

// Create registers the student's preselection
func (s *PreselectionService) Create(ctx context.Context, userID int64, courseIDs []int64) (*dto.SelectionResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	if err := s.validateCourseIDs(ctx, courseIDs); err != nil {
		return nil, err
	}

	selection, err := s.selections.Create(ctx, student.ID, courseIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrSelectionAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrSelectionAlreadyExists, "Ya tienes una preselección registrada")
		}
		return nil, fmt.Errorf("error creating selection: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Ints64("courseIDs", courseIDs).Msg("Preselection registered")
	return toSelectionResponse(selection), nil
}

// Update replaces the courses of the student's existing preselection
func (s *PreselectionService) Update(ctx context.Context, userID int64, courseIDs []int64) (*dto.SelectionResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	if err := s.validateCourseIDs(ctx, courseIDs); err != nil {
		return nil, err
	}

	selection, err := s.selections.Replace(ctx, student.ID, courseIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrSelectionNotFound) {
			return nil, apperrors.NewResourceNotFoundError("No tienes una preselección para actualizar")
		}
		return nil, fmt.Errorf("error updating selection: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Ints64("courseIDs", courseIDs).Msg("Preselection updated")
	return toSelectionResponse(selection), nil
}

// ListAll returns a page of registered preselections for administration
// views, optionally filtered by a free-text student search.
func (s *PreselectionService) ListAll(ctx context.Context, search string, page, pageSize int) ([]dto.AdminSelectionEntry, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	selections, total, err := s.selections.SearchWithDetails(ctx, strings.TrimSpace(search), offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing selections: %w", err)
	}

	entries := make([]dto.AdminSelectionEntry, 0, len(selections))
	for _, selection := range selections {
		entry := dto.AdminSelectionEntry{
			ID:            selection.ID,
			SelectionDate: selection.SelectionDate,
			Courses:       toCourseResponses(selection.SelectedCourses),
		}
		if selection.Student != nil {
			entry.Student = dto.StudentSummary{
				ID:       selection.Student.ID,
				Name:     selection.Student.Name,
				LastName: selection.Student.LastName,
				IDCard:   selection.Student.IDCard,
			}
			if selection.Student.User != nil {
				entry.Student.Email = selection.Student.User.Email
			}
		}
		entries = append(entries, entry)
	}

	return entries, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// Delete removes a preselection by its identifier
func (s *PreselectionService) Delete(ctx context.Context, id int64) error {
	if err := s.selections.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSelectionNotFound) {
			return apperrors.NewResourceNotFoundError("Preselección no encontrada")
		}
		return fmt.Errorf("error deleting selection: %w", err)
	}

	s.logger.Info().Int64("selectionID", id).Msg("Preselection deleted")
	return nil
}

// validateCourseIDs enforces the two distinct existing courses rule
func (s *PreselectionService) validateCourseIDs(ctx context.Context, courseIDs []int64) error {
	if len(courseIDs) != requiredCourseCount {
		return apperrors.NewBadRequestError("Debe seleccionar exactamente 2 cursos")
	}
	if courseIDs[0] == courseIDs[1] {
		return apperrors.NewBadRequestError("Los cursos seleccionados deben ser distintos")
	}

	allExist, err := s.courses.AllExist(ctx, courseIDs)
	if err != nil {
		return fmt.Errorf("error checking courses: %w", err)
	}
	if !allExist {
		return apperrors.NewBadRequestError("Uno o más cursos seleccionados no existen")
	}

	return nil
}

func (s *PreselectionService) mapStudentError(err error) error {
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return apperrors.NewResourceNotFoundError("Perfil de estudiante no encontrado")
	}
	return fmt.Errorf("error retrieving student: %w", err)
}

func toCourseResponses(courses []models.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.CourseResponse{
			ID:        course.ID,
			Name:      course.Name,
			Capacity:  course.Capacity,
			CreatedAt: course.CreatedAt,
			UpdatedAt: course.UpdatedAt,
		})
	}
	return result
}

func toSelectionResponse(selection *models.CourseSelection) *dto.SelectionResponse {
	return &dto.SelectionResponse{
		ID:            selection.ID,
		SelectionDate: selection.SelectionDate,
		Courses:       toCourseResponses(selection.SelectedCourses),
	}
}
