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
	"github.com/glon/summercourse/internal/db"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/dberrors"
)

// SelectionRepository handles database operations for course preselections
type SelectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSelectionRepository creates a new selection repository
func NewSelectionRepository(db *pgxpool.Pool) *SelectionRepository {
	return &SelectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a new preselection with its course links in one transaction.
// A student can hold at most one preselection.
func (r *SelectionRepository) Create(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error) {
	var selection models.CourseSelection

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO course_selections (student_id, selection_date)
			VALUES ($1, NOW())
			RETURNING id, student_id, selection_date, created_at, updated_at
		`, studentID).Scan(
			&selection.ID, &selection.StudentID, &selection.SelectionDate,
			&selection.CreatedAt, &selection.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return r.insertCourseLinks(ctx, tx, selection.ID, courseIDs)
	})

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_selections_student_id_key") {
			return nil, apperrors.ErrSelectionAlreadyExists
		}
		return nil, fmt.Errorf("error creating selection: %w", err)
	}

	courses, err := r.coursesForSelection(ctx, selection.ID)
	if err != nil {
		return nil, err
	}
	selection.SelectedCourses = courses

	return &selection, nil
}

// Replace swaps the course links of an existing preselection in one
// transaction, refreshing the selection date.
func (r *SelectionRepository) Replace(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error) {
	var selection models.CourseSelection

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE course_selections
			SET selection_date = NOW(), updated_at = NOW()
			WHERE student_id = $1
			RETURNING id, student_id, selection_date, created_at, updated_at
		`, studentID).Scan(
			&selection.ID, &selection.StudentID, &selection.SelectionDate,
			&selection.CreatedAt, &selection.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSelectionNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM selection_courses WHERE selection_id = $1`, selection.ID); err != nil {
			return err
		}

		return r.insertCourseLinks(ctx, tx, selection.ID, courseIDs)
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrSelectionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error replacing selection: %w", err)
	}

	courses, err := r.coursesForSelection(ctx, selection.ID)
	if err != nil {
		return nil, err
	}
	selection.SelectedCourses = courses

	return &selection, nil
}

func (r *SelectionRepository) insertCourseLinks(ctx context.Context, tx pgx.Tx, selectionID int64, courseIDs []int64) error {
	for _, courseID := range courseIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO selection_courses (selection_id, course_id)
			VALUES ($1, $2)`, selectionID, courseID); err != nil {
			return err
		}
	}
	return nil
}

// GetByStudentID retrieves a student's preselection with its courses
func (r *SelectionRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.CourseSelection, error) {
	var selection models.CourseSelection
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, selection_date, created_at, updated_at
		FROM course_selections
		WHERE student_id = $1
	`, studentID).Scan(
		&selection.ID, &selection.StudentID, &selection.SelectionDate,
		&selection.CreatedAt, &selection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSelectionNotFound
		}
		return nil, fmt.Errorf("error retrieving selection: %w", err)
	}

	courses, err := r.coursesForSelection(ctx, selection.ID)
	if err != nil {
		return nil, err
	}
	selection.SelectedCourses = courses

	return &selection, nil
}

func (r *SelectionRepository) coursesForSelection(ctx context.Context, selectionID int64) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.capacity, c.created_at, c.updated_at
		FROM courses c
		JOIN selection_courses sc ON sc.course_id = c.id
		WHERE sc.selection_id = $1
		ORDER BY c.name ASC
	`, selectionID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving selection courses: %w", err)
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

// ListWithDetails retrieves every preselection with its student and course
// names, newest first, optionally restricted to a creation date range.
func (r *SelectionRepository) ListWithDetails(ctx context.Context, start, end *time.Time) ([]*models.CourseSelection, error) {
	base := r.sb.Select(
		"cs.id", "cs.student_id", "cs.selection_date", "cs.created_at", "cs.updated_at",
		"s.id", "s.user_id", "s.name", "s.last_name", "s.id_card",
		"s.age", "s.major", "s.semester", "u.email").
		From("course_selections cs").
		Join("students s ON s.id = cs.student_id").
		Join("users u ON u.id = s.user_id").
		OrderBy("cs.selection_date DESC")

	if start != nil && end != nil {
		base = base.Where(squirrel.And{
			squirrel.GtOrEq{"cs.created_at": *start},
			squirrel.LtOrEq{"cs.created_at": *end},
		})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build selection list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing selections: %w", err)
	}
	defer rows.Close()

	var selections []*models.CourseSelection
	for rows.Next() {
		var selection models.CourseSelection
		var student models.Student
		var email string
		if err := rows.Scan(
			&selection.ID, &selection.StudentID, &selection.SelectionDate,
			&selection.CreatedAt, &selection.UpdatedAt,
			&student.ID, &student.UserID, &student.Name, &student.LastName, &student.IDCard,
			&student.Age, &student.Major, &student.Semester, &email,
		); err != nil {
			return nil, err
		}
		student.User = &models.User{ID: student.UserID, Email: email, Role: models.RoleStudent}
		selection.Student = &student
		selections = append(selections, &selection)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, selection := range selections {
		courses, err := r.coursesForSelection(ctx, selection.ID)
		if err != nil {
			return nil, err
		}
		selection.SelectedCourses = courses
	}

	return selections, nil
}

// SearchWithDetails retrieves a page of preselections with their students
// and courses, optionally filtered by a free-text search over the student's
// name, id card and email. Returns the page and the total match count.
func (r *SelectionRepository) SearchWithDetails(ctx context.Context, search string, offset uint64, limit int) ([]*models.CourseSelection, int64, error) {
	base := r.sb.Select().
		From("course_selections cs").
		Join("students s ON s.id = cs.student_id").
		Join("users u ON u.id = s.user_id")

	if search != "" {
		pattern := fmt.Sprintf("%%%s%%", search)
		base = base.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.last_name": pattern},
			squirrel.ILike{"s.id_card": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build selection count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting selections: %w", err)
	}

	pageQuery, pageArgs, err := base.Columns(
		"cs.id", "cs.student_id", "cs.selection_date", "cs.created_at", "cs.updated_at",
		"s.id", "s.user_id", "s.name", "s.last_name", "s.id_card",
		"s.age", "s.major", "s.semester", "u.email").
		OrderBy("cs.selection_date DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build selection search query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching selections: %w", err)
	}
	defer rows.Close()

	var selections []*models.CourseSelection
	for rows.Next() {
		var selection models.CourseSelection
		var student models.Student
		var email string
		if err := rows.Scan(
			&selection.ID, &selection.StudentID, &selection.SelectionDate,
			&selection.CreatedAt, &selection.UpdatedAt,
			&student.ID, &student.UserID, &student.Name, &student.LastName, &student.IDCard,
			&student.Age, &student.Major, &student.Semester, &email,
		); err != nil {
			return nil, 0, err
		}
		student.User = &models.User{ID: student.UserID, Email: email, Role: models.RoleStudent}
		selection.Student = &student
		selections = append(selections, &selection)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, selection := range selections {
		courses, err := r.coursesForSelection(ctx, selection.ID)
		if err != nil {
			return nil, 0, err
		}
		selection.SelectedCourses = courses
	}

	return selections, total, nil
}

// DeleteByID removes a preselection; its course links cascade
func (r *SelectionRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM course_selections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting selection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSelectionNotFound
	}
	return nil
}

// CountSelections returns the number of preselections, optionally restricted
// to a creation date range.
func (r *SelectionRepository) CountSelections(ctx context.Context, start, end *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM course_selections`
	var args []interface{}
	if start != nil && end != nil {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting selections: %w", err)
	}
	return count, nil
}

// CountSince returns the number of preselections created after the given time
func (r *SelectionRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_selections WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting recent selections: %w", err)
	}
	return count, nil
}
