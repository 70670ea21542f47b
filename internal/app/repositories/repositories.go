package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	StudentRepository   *StudentRepository
	CourseRepository    *CourseRepository
	SelectionRepository *SelectionRepository
	VoteRepository      *VoteRepository
	TokenRepository     *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		StudentRepository:   NewStudentRepository(db),
		CourseRepository:    NewCourseRepository(db),
		SelectionRepository: NewSelectionRepository(db),
		VoteRepository:      NewVoteRepository(db),
		TokenRepository:     NewTokenRepository(db),
	}
}
