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

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithStudent inserts a user and, when student is not nil, its student
// record in a single transaction.
func (r *UserRepository) CreateWithStudent(ctx context.Context, user *models.User, student *models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password, role)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`, user.Email, user.Password, user.Role).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return err
		}

		if student == nil {
			return nil
		}

		student.UserID = user.ID
		return tx.QueryRow(ctx, `
			INSERT INTO students (user_id, name, last_name, id_card, age, major, semester)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, student.UserID, student.Name, student.LastName, student.IDCard,
			student.Age, student.Major, student.Semester,
		).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	})

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_id_card_key") {
			return apperrors.ErrIDCardAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	if student != nil {
		user.Student = student
	}
	return nil
}

// GetByEmail retrieves a user by email, including the student record when present
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "u.email = $1", email)
}

// GetByID retrieves a user by ID, including the student record when present
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT u.id, u.email, u.password, u.role, u.created_at, u.updated_at,
			s.id, s.name, s.last_name, s.id_card, s.age, s.major, s.semester
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		WHERE ` + where

	var user models.User
	var st studentColumns
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		&st.id, &st.name, &st.lastName, &st.idCard, &st.age, &st.major, &st.semester,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	user.Student = st.toStudent(user.ID)
	return &user, nil
}

// studentColumns holds the nullable student side of a users LEFT JOIN
type studentColumns struct {
	id       *int64
	name     *string
	lastName *string
	idCard   *string
	age      *int
	major    *string
	semester *int
}

func (c studentColumns) toStudent(userID int64) *models.Student {
	if c.id == nil {
		return nil
	}
	return &models.Student{
		ID:       *c.id,
		UserID:   userID,
		Name:     *c.name,
		LastName: *c.lastName,
		IDCard:   *c.idCard,
		Age:      *c.age,
		Major:    *c.major,
		Semester: *c.semester,
	}
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// ListProfiles retrieves a page of users with their student records,
// optionally filtered by role and a free-text search over email and name.
func (r *UserRepository) ListProfiles(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	base := r.sb.Select().
		From("users u").
		LeftJoin("students s ON s.user_id = u.id")

	if role != "" {
		base = base.Where(squirrel.Eq{"u.role": role})
	}
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.last_name": pattern},
		})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting profiles: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns("u.id", "u.email", "u.role", "u.created_at", "u.updated_at",
			"s.id", "s.name", "s.last_name", "s.id_card", "s.age", "s.major", "s.semester").
		OrderBy("u.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var st studentColumns
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
			&st.id, &st.name, &st.lastName, &st.idCard, &st.age, &st.major, &st.semester,
		); err != nil {
			return nil, 0, err
		}
		user.Student = st.toStudent(user.ID)
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountUsers returns the number of user accounts, optionally restricted to
// a creation date range.
func (r *UserRepository) CountUsers(ctx context.Context, start, end *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM users`
	var args []interface{}
	if start != nil && end != nil {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CountByRole returns the number of users per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[models.RoleType]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role
	`)
	if err != nil {
		return nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RoleType]int)
	for rows.Next() {
		var role models.RoleType
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
