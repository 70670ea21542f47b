package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/dberrors"
	"github.com/glon/summercourse/internal/pkg/helpers"
)

// VoteRepository handles database operations for satisfaction votes
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{
		db: db,
	}
}

// Create registers a vote. A student can vote once per category.
func (r *VoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (student_id, category, option, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		vote.StudentID, vote.Category, vote.Option, helpers.GetNullString(vote.Comment),
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrVoteAlreadyExists
		}
		return fmt.Errorf("error creating vote: %w", err)
	}

	return nil
}

// Update changes the option and comment of an existing vote
func (r *VoteRepository) Update(ctx context.Context, vote *models.Vote) error {
	query := `
		UPDATE votes
		SET option = $1, comment = $2, updated_at = NOW()
		WHERE student_id = $3 AND category = $4
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		vote.Option, helpers.GetNullString(vote.Comment), vote.StudentID, vote.Category,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrVoteNotFound
		}
		return fmt.Errorf("error updating vote: %w", err)
	}

	return nil
}

// GetByStudent retrieves all votes cast by a student
func (r *VoteRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Vote, error) {
	query := `
		SELECT id, student_id, category, option, comment, created_at, updated_at
		FROM votes
		WHERE student_id = $1
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving votes: %w", err)
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		var vote models.Vote
		if err := rows.Scan(
			&vote.ID, &vote.StudentID, &vote.Category, &vote.Option, &vote.Comment,
			&vote.CreatedAt, &vote.UpdatedAt,
		); err != nil {
			return nil, err
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}

// CountVotes returns the number of votes, optionally restricted to a
// creation date range.
func (r *VoteRepository) CountVotes(ctx context.Context, start, end *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM votes`
	var args []interface{}
	if start != nil && end != nil {
		query += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting votes: %w", err)
	}
	return count, nil
}

// CountVoters returns the number of distinct students who have voted
func (r *VoteRepository) CountVoters(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT student_id) FROM votes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting voters: %w", err)
	}
	return count, nil
}

// DistributionRow is the tally for one option within a category
type DistributionRow struct {
	Category string
	Option   string
	Count    int
}

// Distribution returns vote counts grouped by category and option
func (r *VoteRepository) Distribution(ctx context.Context) ([]DistributionRow, error) {
	query := `
		SELECT category, option, COUNT(*)
		FROM votes
		GROUP BY category, option
		ORDER BY category, COUNT(*) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error computing vote distribution: %w", err)
	}
	defer rows.Close()

	var result []DistributionRow
	for rows.Next() {
		var row DistributionRow
		if err := rows.Scan(&row.Category, &row.Option, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Recent retrieves votes cast after the given time, newest first
func (r *VoteRepository) Recent(ctx context.Context, since time.Time, limit int) ([]*models.Vote, error) {
	query := `
		SELECT id, student_id, category, option, comment, created_at, updated_at
		FROM votes
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent votes: %w", err)
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		var vote models.Vote
		if err := rows.Scan(
			&vote.ID, &vote.StudentID, &vote.Category, &vote.Option, &vote.Comment,
			&vote.CreatedAt, &vote.UpdatedAt,
		); err != nil {
			return nil, err
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}

// CommentRow is an anonymized free-text vote comment
type CommentRow struct {
	Category  string
	Comment   string
	CreatedAt time.Time
}

// Comments retrieves non-empty vote comments, newest first
func (r *VoteRepository) Comments(ctx context.Context, limit int) ([]CommentRow, error) {
	query := `
		SELECT category, comment, created_at
		FROM votes
		WHERE comment IS NOT NULL AND comment <> ''
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving vote comments: %w", err)
	}
	defer rows.Close()

	var result []CommentRow
	for rows.Next() {
		var row CommentRow
		if err := rows.Scan(&row.Category, &row.Comment, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// TrendRow is the vote count for a single day
type TrendRow struct {
	Day   time.Time
	Count int
}

// DailyTrend returns per-day vote counts since the given time
func (r *VoteRepository) DailyTrend(ctx context.Context, since time.Time) ([]TrendRow, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM votes
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error computing vote trend: %w", err)
	}
	defer rows.Close()

	var result []TrendRow
	for rows.Next() {
		var row TrendRow
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteAll removes every vote and returns the number deleted
func (r *VoteRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM votes`)
	if err != nil {
		return 0, fmt.Errorf("error deleting votes: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
