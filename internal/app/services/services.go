// Services defined in this package:
// - AuthService: Handles authentication, registration and token lifecycle
// - PreselectionService: Handles student course preselections
// - CourseService: Handles the course catalog and demand statistics
// - VoteService: Handles satisfaction voting and vote analytics
// - ReportService: Handles administrative reports and dashboard figures
// - ProfileService: Handles student profiles and user administration
package services

import (
	"context"
	"time"

	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/repositories"
)

// The store interfaces below describe what each service needs from the
// persistence layer. The pgx-backed repositories satisfy them; tests use
// in-memory substitutes.

// UserStore provides user account persistence
type UserStore interface {
	CreateWithStudent(ctx context.Context, user *models.User, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListProfiles(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.User, int64, error)
	CountUsers(ctx context.Context, start, end *time.Time) (int, error)
	CountByRole(ctx context.Context) (map[models.RoleType]int, error)
}

// StudentStore provides student record persistence
type StudentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	ListWithCourses(ctx context.Context, start, end *time.Time) ([]repositories.StudentSelectionRow, error)
	CountStudents(ctx context.Context, start, end *time.Time) (int, error)
	CountWithSelection(ctx context.Context, start, end *time.Time) (int, error)
	AverageAge(ctx context.Context) (float64, error)
}

// CourseStore provides course catalog persistence
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	ListWithSelectionCounts(ctx context.Context) ([]repositories.CourseDemandRow, error)
	TopByDemand(ctx context.Context, limit int) ([]repositories.CourseDemandRow, error)
	AllExist(ctx context.Context, ids []int64) (bool, error)
	EnrollmentCount(ctx context.Context, courseID int64) (int, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	ListWithRosters(ctx context.Context, start, end *time.Time) ([]repositories.CourseRosterRow, error)
	CountCourses(ctx context.Context, start, end *time.Time) (int, error)
	CountWithSelection(ctx context.Context, start, end *time.Time) (int, error)
}

// SelectionStore provides preselection persistence
type SelectionStore interface {
	Create(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error)
	Replace(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error)
	GetByStudentID(ctx context.Context, studentID int64) (*models.CourseSelection, error)
	ListWithDetails(ctx context.Context, start, end *time.Time) ([]*models.CourseSelection, error)
	SearchWithDetails(ctx context.Context, search string, offset uint64, limit int) ([]*models.CourseSelection, int64, error)
	DeleteByID(ctx context.Context, id int64) error
	CountSelections(ctx context.Context, start, end *time.Time) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// VoteStore provides vote persistence
type VoteStore interface {
	Create(ctx context.Context, vote *models.Vote) error
	Update(ctx context.Context, vote *models.Vote) error
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Vote, error)
	CountVotes(ctx context.Context, start, end *time.Time) (int, error)
	CountVoters(ctx context.Context) (int, error)
	Distribution(ctx context.Context) ([]repositories.DistributionRow, error)
	Recent(ctx context.Context, since time.Time, limit int) ([]*models.Vote, error)
	Comments(ctx context.Context, limit int) ([]repositories.CommentRow, error)
	DailyTrend(ctx context.Context, since time.Time) ([]repositories.TrendRow, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// TokenStore provides refresh token persistence
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}
