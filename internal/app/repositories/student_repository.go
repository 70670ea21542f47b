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
)

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUserID retrieves a student record by its owning user ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.last_name, s.id_card, s.age, s.major, s.semester,
			s.created_at, s.updated_at, u.email
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
	`

	var student models.Student
	var email string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&student.ID, &student.UserID, &student.Name, &student.LastName, &student.IDCard,
		&student.Age, &student.Major, &student.Semester,
		&student.CreatedAt, &student.UpdatedAt, &email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.User = &models.User{ID: userID, Email: email, Role: models.RoleStudent}
	return &student, nil
}

// Update persists the mutable profile fields of a student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, last_name = $2, age = $3, major = $4, semester = $5, updated_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.LastName, student.Age, student.Major, student.Semester, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// StudentSelectionRow is one student joined with the names of the courses
// in their preselection, if any.
type StudentSelectionRow struct {
	Student models.Student
	Email   string
	Courses []string
}

// ListWithCourses retrieves all students with their selected course names,
// optionally restricted to students created within a date range.
func (r *StudentRepository) ListWithCourses(ctx context.Context, start, end *time.Time) ([]StudentSelectionRow, error) {
	base := r.sb.Select(
		"s.id", "s.user_id", "s.name", "s.last_name", "s.id_card",
		"s.age", "s.major", "s.semester", "u.email",
		"COALESCE(array_agg(c.name ORDER BY c.name) FILTER (WHERE c.name IS NOT NULL), '{}')").
		From("students s").
		Join("users u ON u.id = s.user_id").
		LeftJoin("course_selections cs ON cs.student_id = s.id").
		LeftJoin("selection_courses sc ON sc.selection_id = cs.id").
		LeftJoin("courses c ON c.id = sc.course_id").
		GroupBy("s.id", "u.email").
		OrderBy("s.last_name", "s.name")

	if start != nil && end != nil {
		base = base.Where(squirrel.And{
			squirrel.GtOrEq{"s.created_at": *start},
			squirrel.LtOrEq{"s.created_at": *end},
		})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var result []StudentSelectionRow
	for rows.Next() {
		var row StudentSelectionRow
		if err := rows.Scan(
			&row.Student.ID, &row.Student.UserID, &row.Student.Name, &row.Student.LastName,
			&row.Student.IDCard, &row.Student.Age, &row.Student.Major, &row.Student.Semester,
			&row.Email, &row.Courses,
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

// CountStudents returns the number of student records, optionally restricted
// to a creation date range.
func (r *StudentRepository) CountStudents(ctx context.Context, start, end *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM students`
	var args []interface{}
	if start != nil && end != nil {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountWithSelection returns the number of students holding a preselection,
// optionally restricted to a creation date range.
func (r *StudentRepository) CountWithSelection(ctx context.Context, start, end *time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM students s
		WHERE EXISTS (SELECT 1 FROM course_selections cs WHERE cs.student_id = s.id)`
	var args []interface{}
	if start != nil && end != nil {
		query += ` AND s.created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students with selection: %w", err)
	}
	return count, nil
}

// AverageAge returns the mean age across all students, zero when there are none
func (r *StudentRepository) AverageAge(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(AVG(age), 0) FROM students`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return avg, nil
}
