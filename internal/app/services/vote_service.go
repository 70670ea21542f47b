package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

// Voting analytics window limits
const (
	recentVotesWindow = 7 * 24 * time.Hour
	recentVotesLimit  = 20
	voteCommentsLimit = 50
	voteTrendDays     = 30
)

// generalExperienceOptions are the fixed answers for the overall
// experience category.
var generalExperienceOptions = []string{"Excelente", "Buena", "Regular", "Mala"}

// VoteService handles satisfaction voting
type VoteService struct {
	votes    VoteStore
	courses  CourseStore
	students StudentStore
	logger   zerolog.Logger
}

// NewVoteService creates a new VoteService
func NewVoteService(votes VoteStore, courses CourseStore, students StudentStore, logger zerolog.Logger) *VoteService {
	return &VoteService{
		votes:    votes,
		courses:  courses,
		students: students,
		logger:   logger,
	}
}

// GetCategories returns the voting categories with their options and the
// calling student's vote state in each.
func (s *VoteService) GetCategories(ctx context.Context, userID int64) (*dto.VoteCategoriesResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	votes, err := s.votes.GetByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving votes: %w", err)
	}

	votesByCategory := make(map[string]*models.Vote, len(votes))
	for _, vote := range votes {
		votesByCategory[vote.Category] = vote
	}

	courseOptions := make([]dto.VoteOption, 0, len(courses))
	for _, course := range courses {
		courseOptions = append(courseOptions, dto.VoteOption{
			ID:   slugify(course.Name),
			Name: course.Name,
		})
	}

	experienceOptions := make([]dto.VoteOption, 0, len(generalExperienceOptions))
	for _, option := range generalExperienceOptions {
		experienceOptions = append(experienceOptions, dto.VoteOption{
			ID:   slugify(option),
			Name: option,
		})
	}

	categories := []dto.VoteCategory{
		{ID: models.CategoryBestCourse, Name: "Mejor Curso", Options: courseOptions},
		{ID: models.CategoryBestProfessor, Name: "Mejor Profesor"},
		{ID: models.CategoryGeneralExperience, Name: "Experiencia General", Options: experienceOptions},
	}

	for i := range categories {
		if vote, ok := votesByCategory[categories[i].ID]; ok {
			categories[i].HasVoted = true
			categories[i].Vote = toVoteResponse(vote)
		}
	}

	return &dto.VoteCategoriesResponse{Categories: categories}, nil
}

// Cast registers a vote in a category. A student votes once per category.
func (s *VoteService) Cast(ctx context.Context, userID int64, req *dto.VoteRequest) (*dto.VoteResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	if err := s.validateOption(ctx, req.Category, req.Option); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		StudentID: student.ID,
		Category:  req.Category,
		Option:    strings.TrimSpace(req.Option),
		Comment:   req.Comment,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, apperrors.ErrVoteAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrVoteAlreadyExists, "Ya has votado en esta categoría")
		}
		return nil, fmt.Errorf("error creating vote: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Str("category", vote.Category).Msg("Vote cast")
	return toVoteResponse(vote), nil
}

// Change updates the student's existing vote in a category
func (s *VoteService) Change(ctx context.Context, userID int64, req *dto.VoteRequest) (*dto.VoteResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapStudentError(err)
	}

	if err := s.validateOption(ctx, req.Category, req.Option); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		StudentID: student.ID,
		Category:  req.Category,
		Option:    strings.TrimSpace(req.Option),
		Comment:   req.Comment,
	}
	if err := s.votes.Update(ctx, vote); err != nil {
		if errors.Is(err, apperrors.ErrVoteNotFound) {
			return nil, apperrors.NewResourceNotFoundError("No tienes un voto en esta categoría")
		}
		return nil, fmt.Errorf("error updating vote: %w", err)
	}

	return toVoteResponse(vote), nil
}

// Statistics builds the voting analytics payload for administrators
func (s *VoteService) Statistics(ctx context.Context) (*dto.VoteStatisticsResponse, error) {
	totalVotes, err := s.votes.CountVotes(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	totalVoters, err := s.votes.CountVoters(ctx)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.students.CountStudents(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	participation := 0.0
	if totalStudents > 0 {
		participation = roundTo(float64(totalVoters)/float64(totalStudents)*100, 1)
	}

	distribution, err := s.votes.Distribution(ctx)
	if err != nil {
		return nil, err
	}

	totalsPerCategory := make(map[string]int)
	for _, row := range distribution {
		totalsPerCategory[row.Category] += row.Count
	}

	categoryOrder := []string{models.CategoryBestCourse, models.CategoryBestProfessor, models.CategoryGeneralExperience}
	categories := make([]dto.CategoryStats, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		stats := dto.CategoryStats{Category: category, Total: totalsPerCategory[category]}
		for _, row := range distribution {
			if row.Category != category {
				continue
			}
			percentage := 0.0
			if stats.Total > 0 {
				percentage = roundTo(float64(row.Count)/float64(stats.Total)*100, 1)
			}
			stats.Options = append(stats.Options, dto.OptionCount{
				Option:     row.Option,
				Count:      row.Count,
				Percentage: percentage,
			})
		}
		categories = append(categories, stats)
	}

	recent, err := s.votes.Recent(ctx, time.Now().Add(-recentVotesWindow), recentVotesLimit)
	if err != nil {
		return nil, err
	}
	recentVotes := make([]dto.RecentVote, 0, len(recent))
	for _, vote := range recent {
		recentVotes = append(recentVotes, dto.RecentVote{
			Category:  vote.Category,
			Option:    vote.Option,
			CreatedAt: vote.CreatedAt,
		})
	}

	commentRows, err := s.votes.Comments(ctx, voteCommentsLimit)
	if err != nil {
		return nil, err
	}
	comments := make([]dto.VoteComment, 0, len(commentRows))
	for _, row := range commentRows {
		comments = append(comments, dto.VoteComment{
			Category:  row.Category,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
		})
	}

	trendRows, err := s.votes.DailyTrend(ctx, time.Now().AddDate(0, 0, -voteTrendDays))
	if err != nil {
		return nil, err
	}
	trend := make([]dto.TrendPoint, 0, len(trendRows))
	for _, row := range trendRows {
		trend = append(trend, dto.TrendPoint{
			Date:  row.Day.Format("2006-01-02"),
			Count: row.Count,
		})
	}

	return &dto.VoteStatisticsResponse{
		TotalVotes:        totalVotes,
		TotalVoters:       totalVoters,
		TotalStudents:     totalStudents,
		ParticipationRate: participation,
		Categories:        categories,
		RecentVotes:       recentVotes,
		Comments:          comments,
		Trend:             trend,
	}, nil
}

// Reset deletes every vote and reports how many were removed
func (s *VoteService) Reset(ctx context.Context) (int64, error) {
	deleted, err := s.votes.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Warn().Int64("deleted", deleted).Msg("All votes deleted")
	return deleted, nil
}

// validateOption checks that the option belongs to the category
func (s *VoteService) validateOption(ctx context.Context, category, option string) error {
	option = strings.TrimSpace(option)
	if option == "" {
		return apperrors.NewBadRequestError("La opción es obligatoria")
	}

	switch category {
	case models.CategoryBestCourse:
		courses, err := s.courses.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("error listing courses: %w", err)
		}
		for _, course := range courses {
			if course.Name == option {
				return nil
			}
		}
		return apperrors.NewBadRequestError("Opción inválida para esta categoría")
	case models.CategoryBestProfessor:
		// Free-text professor name
		return nil
	case models.CategoryGeneralExperience:
		for _, valid := range generalExperienceOptions {
			if valid == option {
				return nil
			}
		}
		return apperrors.NewBadRequestError("Opción inválida para esta categoría")
	default:
		return apperrors.NewBadRequestError("Categoría de votación inválida")
	}
}

func (s *VoteService) mapStudentError(err error) error {
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return apperrors.NewResourceNotFoundError("Perfil de estudiante no encontrado")
	}
	return fmt.Errorf("error retrieving student: %w", err)
}

func toVoteResponse(vote *models.Vote) *dto.VoteResponse {
	return &dto.VoteResponse{
		ID:        vote.ID,
		Category:  vote.Category,
		Option:    vote.Option,
		Comment:   vote.Comment,
		CreatedAt: vote.CreatedAt,
		UpdatedAt: vote.UpdatedAt,
	}
}

// slugify turns an option label into a stable identifier
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == 'á':
			b.WriteRune('a')
			lastDash = false
		case r == 'é':
			b.WriteRune('e')
			lastDash = false
		case r == 'í':
			b.WriteRune('i')
			lastDash = false
		case r == 'ó':
			b.WriteRune('o')
			lastDash = false
		case r == 'ú':
			b.WriteRune('u')
			lastDash = false
		case r == 'ñ':
			b.WriteRune('n')
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// roundTo rounds to the given number of decimal places
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
