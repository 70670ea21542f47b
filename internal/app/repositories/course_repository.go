package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/dberrors"
)

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, capacity)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, course.Name, course.Capacity).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.Name, &course.Capacity, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves every course ordered by name
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, name, capacity, created_at, updated_at
		FROM courses
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID, &course.Name, &course.Capacity, &course.CreatedAt, &course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// CourseDemandRow is a course with its current selection count
type CourseDemandRow struct {
	Course     models.Course
	Selections int
}

// ListWithSelectionCounts retrieves every course with its selection count,
// newest course first.
func (r *CourseRepository) ListWithSelectionCounts(ctx context.Context) ([]CourseDemandRow, error) {
	query := `
		SELECT c.id, c.name, c.capacity, c.created_at, c.updated_at, COUNT(sc.selection_id)
		FROM courses c
		LEFT JOIN selection_courses sc ON sc.course_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing course demand: %w", err)
	}
	defer rows.Close()

	var result []CourseDemandRow
	for rows.Next() {
		var row CourseDemandRow
		if err := rows.Scan(
			&row.Course.ID, &row.Course.Name, &row.Course.Capacity,
			&row.Course.CreatedAt, &row.Course.UpdatedAt, &row.Selections,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// TopByDemand retrieves the most selected courses, highest demand first
func (r *CourseRepository) TopByDemand(ctx context.Context, limit int) ([]CourseDemandRow, error) {
	query := `
		SELECT c.id, c.name, c.capacity, c.created_at, c.updated_at, COUNT(sc.selection_id)
		FROM courses c
		LEFT JOIN selection_courses sc ON sc.course_id = c.id
		GROUP BY c.id
		ORDER BY COUNT(sc.selection_id) DESC, c.name ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing top courses: %w", err)
	}
	defer rows.Close()

	var result []CourseDemandRow
	for rows.Next() {
		var row CourseDemandRow
		if err := rows.Scan(
			&row.Course.ID, &row.Course.Name, &row.Course.Capacity,
			&row.Course.CreatedAt, &row.Course.UpdatedAt, &row.Selections,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// AllExist checks that every given course ID refers to an existing course
func (r *CourseRepository) AllExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM courses WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return count == len(ids), nil
}

// EnrollmentCount returns the number of selections that include the course
func (r *CourseRepository) EnrollmentCount(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM selection_courses WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollment: %w", err)
	}
	return count, nil
}

// Update persists name and capacity changes for a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, capacity = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, course.Capacity, course.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. Courses referenced by a preselection cannot be deleted.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	enrolled, err := r.EnrollmentCount(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return apperrors.ErrCourseHasEnrollment
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CourseRosterRow is a course with the full names of its enrolled students
type CourseRosterRow struct {
	Course   models.Course
	Students []string
}

// ListWithRosters retrieves courses with their enrolled student names,
// optionally restricted to courses created within a date range.
func (r *CourseRepository) ListWithRosters(ctx context.Context, start, end *time.Time) ([]CourseRosterRow, error) {
	base := r.sb.Select(
		"c.id", "c.name", "c.capacity",
		"COALESCE(array_agg(s.name || ' ' || s.last_name ORDER BY s.last_name) FILTER (WHERE s.id IS NOT NULL), '{}')").
		From("courses c").
		LeftJoin("selection_courses sc ON sc.course_id = c.id").
		LeftJoin("course_selections cs ON cs.id = sc.selection_id").
		LeftJoin("students s ON s.id = cs.student_id").
		GroupBy("c.id").
		OrderBy("c.name ASC")

	if start != nil && end != nil {
		base = base.Where(squirrel.And{
			squirrel.GtOrEq{"c.created_at": *start},
			squirrel.LtOrEq{"c.created_at": *end},
		})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing course rosters: %w", err)
	}
	defer rows.Close()

	var result []CourseRosterRow
	for rows.Next() {
		var row CourseRosterRow
		if err := rows.Scan(&row.Course.ID, &row.Course.Name, &row.Course.Capacity, &row.Students); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// CountCourses returns the number of courses, optionally restricted to a
// creation date range.
func (r *CourseRepository) CountCourses(ctx context.Context, start, end *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM courses`
	var args []interface{}
	if start != nil && end != nil {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// CountWithSelection returns the number of courses with at least one enrolled
// student, optionally restricted to a creation date range.
func (r *CourseRepository) CountWithSelection(ctx context.Context, start, end *time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM courses c
		WHERE EXISTS (SELECT 1 FROM selection_courses sc WHERE sc.course_id = c.id)`
	var args []interface{}
	if start != nil && end != nil {
		query += ` AND c.created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses with enrollment: %w", err)
	}
	return count, nil
}
