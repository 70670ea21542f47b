package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/repositories"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

// topCoursesLimit caps the public demand ranking
const topCoursesLimit = 10

// CourseService handles the course catalog
type CourseService struct {
	courses    CourseStore
	selections SelectionStore
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, selections SelectionStore, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:    courses,
		selections: selections,
		logger:     logger,
	}
}

// ListForAdmin returns every course with enrollment figures, newest first
func (s *CourseService) ListForAdmin(ctx context.Context) ([]dto.AdminCourseResponse, error) {
	rows, err := s.courses.ListWithSelectionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	result := make([]dto.AdminCourseResponse, 0, len(rows))
	for _, row := range rows {
		available := row.Course.Capacity - row.Selections
		if available < 0 {
			available = 0
		}
		result = append(result, dto.AdminCourseResponse{
			ID:             row.Course.ID,
			Name:           row.Course.Name,
			Capacity:       row.Course.Capacity,
			Selections:     row.Selections,
			AvailableSpots: available,
			CreatedAt:      row.Course.CreatedAt,
			UpdatedAt:      row.Course.UpdatedAt,
		})
	}

	return result, nil
}

// Create adds a course to the catalog
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("El nombre del curso es obligatorio")
	}
	if req.Capacity < 1 {
		return nil, apperrors.NewBadRequestError("La capacidad debe ser al menos 1")
	}

	course := &models.Course{Name: name, Capacity: req.Capacity}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists, "Ya existe un curso con ese nombre")
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// Update changes a course's name and capacity. Capacity cannot drop below
// the current enrollment.
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Curso no encontrado")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("El nombre del curso es obligatorio")
	}

	enrolled, err := s.courses.EnrollmentCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Capacity < enrolled {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("La capacidad no puede ser menor que las inscripciones actuales (%d)", enrolled))
	}

	course.Name = name
	course.Capacity = req.Capacity
	if err := s.courses.Update(ctx, course); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCourseAlreadyExists):
			return nil, apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists, "Ya existe un curso con ese nombre")
		case errors.Is(err, apperrors.ErrCourseNotFound):
			return nil, apperrors.NewResourceNotFoundError("Curso no encontrado")
		default:
			return nil, fmt.Errorf("error updating course: %w", err)
		}
	}

	return course, nil
}

// Delete removes a course from the catalog
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCourseNotFound):
			return apperrors.NewResourceNotFoundError("Curso no encontrado")
		case errors.Is(err, apperrors.ErrCourseHasEnrollment):
			return apperrors.NewConflictError("No se puede eliminar un curso con estudiantes inscritos")
		default:
			return fmt.Errorf("error deleting course: %w", err)
		}
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

// PublicStats returns the demand ranking shown on the public landing page
func (s *CourseService) PublicStats(ctx context.Context) (*dto.CourseStatsResponse, error) {
	totalCourses, err := s.courses.CountCourses(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	totalSelections, err := s.selections.CountSelections(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	top, err := s.courses.TopByDemand(ctx, topCoursesLimit)
	if err != nil {
		return nil, err
	}

	return &dto.CourseStatsResponse{
		TotalCourses:    totalCourses,
		TotalSelections: totalSelections,
		TopCourses:      toCoursePopularity(top),
	}, nil
}

func toCoursePopularity(rows []repositories.CourseDemandRow) []dto.CoursePopularity {
	result := make([]dto.CoursePopularity, 0, len(rows))
	for _, row := range rows {
		capacity := row.Course.Capacity
		if capacity < 1 {
			capacity = 1
		}
		result = append(result, dto.CoursePopularity{
			ID:         row.Course.ID,
			Name:       row.Course.Name,
			Capacity:   row.Course.Capacity,
			Selections: row.Selections,
			Popularity: int(math.Round(float64(row.Selections) / float64(capacity) * 100)),
		})
	}
	return result
}
