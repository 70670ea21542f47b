package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

// Report types accepted by Generate
const (
	ReportOverview      = "overview"
	ReportCourses       = "courses"
	ReportStudents      = "students"
	ReportPreselections = "preselections"
)

// Occupancy thresholds for the courses report summary
const (
	fullOccupancyPct = 100
	lowDemandPct     = 50
)

// recentSelectionsWindow bounds the dashboard's recent activity figure
const recentSelectionsWindow = 7 * 24 * time.Hour

// dashboardTopCourses caps the dashboard popularity list
const dashboardTopCourses = 5

// ReportService builds administrative reports
type ReportService struct {
	users      UserStore
	students   StudentStore
	courses    CourseStore
	selections SelectionStore
	votes      VoteStore
	logger     zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(users UserStore, students StudentStore, courses CourseStore,
	selections SelectionStore, votes VoteStore, logger zerolog.Logger) *ReportService {
	return &ReportService{
		users:      users,
		students:   students,
		courses:    courses,
		selections: selections,
		votes:      votes,
		logger:     logger,
	}
}

// Generate builds the report of the given type, optionally restricted to a
// creation date range.
func (s *ReportService) Generate(ctx context.Context, reportType string, start, end *time.Time) (*dto.ReportResponse, error) {
	var data interface{}
	var err error

	switch reportType {
	case ReportOverview:
		data, err = s.overview(ctx, start, end)
	case ReportCourses:
		data, err = s.coursesReport(ctx, start, end)
	case ReportStudents:
		data, err = s.studentsReport(ctx, start, end)
	case ReportPreselections:
		data, err = s.preselectionsReport(ctx, start, end)
	default:
		return nil, apperrors.NewBadRequestError("Tipo de reporte inválido")
	}
	if err != nil {
		return nil, err
	}

	return &dto.ReportResponse{
		Type:        reportType,
		GeneratedAt: time.Now(),
		Data:        data,
	}, nil
}

func (s *ReportService) overview(ctx context.Context, start, end *time.Time) (*dto.OverviewReport, error) {
	totalUsers, err := s.users.CountUsers(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.students.CountStudents(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.courses.CountCourses(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totalSelections, err := s.selections.CountSelections(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totalVotes, err := s.votes.CountVotes(ctx, start, end)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if totalStudents > 0 {
		// Each complete preselection holds two courses
		average = roundTo(float64(totalSelections*2)/float64(totalStudents), 2)
	}

	studentsWithSelection, err := s.students.CountWithSelection(ctx, start, end)
	if err != nil {
		return nil, err
	}
	withoutCourses := totalStudents - studentsWithSelection
	if withoutCourses < 0 {
		withoutCourses = 0
	}

	coursesWithStudents, err := s.courses.CountWithSelection(ctx, start, end)
	if err != nil {
		return nil, err
	}
	emptyCourses := totalCourses - coursesWithStudents
	if emptyCourses < 0 {
		emptyCourses = 0
	}

	return &dto.OverviewReport{
		TotalUsers:               totalUsers,
		TotalStudents:            totalStudents,
		TotalCourses:             totalCourses,
		TotalSelections:          totalSelections,
		TotalVotes:               totalVotes,
		AverageCoursesPerStudent: average,
		StudentsWithoutCourses:   withoutCourses,
		CoursesWithoutStudents:   emptyCourses,
	}, nil
}

func (s *ReportService) coursesReport(ctx context.Context, start, end *time.Time) (*dto.CoursesReport, error) {
	rows, err := s.courses.ListWithRosters(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.CoursesReport{Courses: make([]dto.CourseReportEntry, 0, len(rows))}
	totalOccupancy := 0.0
	for _, row := range rows {
		enrolled := len(row.Students)
		available := row.Course.Capacity - enrolled
		if available < 0 {
			available = 0
		}
		occupancy := 0
		if row.Course.Capacity > 0 {
			occupancy = int(math.Round(float64(enrolled) / float64(row.Course.Capacity) * 100))
		}

		if occupancy >= fullOccupancyPct {
			report.Summary.FullCourses++
		}
		if occupancy < lowDemandPct {
			report.Summary.LowDemandCourses++
		}
		totalOccupancy += float64(occupancy)

		report.Courses = append(report.Courses, dto.CourseReportEntry{
			ID:             row.Course.ID,
			Name:           row.Course.Name,
			Capacity:       row.Course.Capacity,
			Enrolled:       enrolled,
			AvailableSpots: available,
			OccupancyRate:  occupancy,
			Students:       row.Students,
		})
	}

	if len(rows) > 0 {
		report.Summary.AverageOccupancy = int(math.Round(totalOccupancy / float64(len(rows))))
	}

	return report, nil
}

func (s *ReportService) studentsReport(ctx context.Context, start, end *time.Time) (*dto.StudentsReport, error) {
	rows, err := s.students.ListWithCourses(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.StudentsReport{Students: make([]dto.StudentReportEntry, 0, len(rows))}
	totalAge := 0
	for _, row := range rows {
		if len(row.Courses) > 0 {
			report.Summary.StudentsWithSelection++
		}
		totalAge += row.Student.Age

		report.Students = append(report.Students, dto.StudentReportEntry{
			ID:           row.Student.ID,
			Name:         row.Student.Name,
			LastName:     row.Student.LastName,
			IDCard:       row.Student.IDCard,
			Email:        row.Email,
			Age:          row.Student.Age,
			Major:        row.Student.Major,
			Semester:     row.Student.Semester,
			CoursesCount: len(row.Courses),
			Courses:      row.Courses,
		})
	}

	report.Summary.TotalStudents = len(rows)
	if len(rows) > 0 {
		report.Summary.AverageAge = int(math.Round(float64(totalAge) / float64(len(rows))))
	}

	return report, nil
}

func (s *ReportService) preselectionsReport(ctx context.Context, start, end *time.Time) (*dto.PreselectionsReport, error) {
	selections, err := s.selections.ListWithDetails(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.PreselectionsReport{
		Preselections: make([]dto.PreselectionReportEntry, 0, len(selections)),
	}
	totalLinks := 0
	for _, selection := range selections {
		totalLinks += len(selection.SelectedCourses)

		status := "Incompleta"
		if len(selection.SelectedCourses) == requiredCourseCount {
			status = "Completa"
			report.Summary.Completed++
		} else {
			report.Summary.Incomplete++
		}

		entry := dto.PreselectionReportEntry{
			ID:            selection.ID,
			SelectionDate: selection.SelectionDate,
			Status:        status,
		}
		if selection.Student != nil {
			entry.Student = selection.Student.FullName()
			entry.IDCard = selection.Student.IDCard
		}
		for _, course := range selection.SelectedCourses {
			entry.Courses = append(entry.Courses, course.Name)
		}
		report.Preselections = append(report.Preselections, entry)
	}

	report.Summary.TotalPreselections = len(selections)
	if len(selections) > 0 {
		report.Summary.AverageCoursesPerSelection = roundTo(float64(totalLinks)/float64(len(selections)), 2)
	}
	return report, nil
}

// DashboardStats builds the administration dashboard figures
func (s *ReportService) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalUsers, err := s.users.CountUsers(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.students.CountStudents(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.courses.CountCourses(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	totalSelections, err := s.selections.CountSelections(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	roleCounts := make([]dto.RoleCount, 0, len(byRole))
	for role, count := range byRole {
		roleCounts = append(roleCounts, dto.RoleCount{Role: string(role), Count: count})
	}
	sort.Slice(roleCounts, func(i, j int) bool { return roleCounts[i].Role < roleCounts[j].Role })

	recentSelections, err := s.selections.CountSince(ctx, time.Now().Add(-recentSelectionsWindow))
	if err != nil {
		return nil, err
	}

	averageAge, err := s.students.AverageAge(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.courses.TopByDemand(ctx, dashboardTopCourses)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalUsers:       totalUsers,
		TotalStudents:    totalStudents,
		TotalCourses:     totalCourses,
		TotalSelections:  totalSelections,
		UsersByRole:      roleCounts,
		RecentSelections: recentSelections,
		AverageAge:       roundTo(averageAge, 1),
		PopularCourses:   toCoursePopularity(top),
	}, nil
}
