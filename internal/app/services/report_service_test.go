package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/app/repositories"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

func newTestReportService(t *testing.T) (*ReportService, *fakeUserStore, *fakeStudentStore, *fakeCourseStore, *fakeSelectionStore, *fakeVoteStore) {
	t.Helper()
	users := newFakeUserStore()
	students := newFakeStudentStore()
	courses := newFakeCourseStore("CÁLCULO I", "FÍSICA I")
	selections := newFakeSelectionStore(courses)
	students.selections = selections
	votes := newFakeVoteStore()
	svc := NewReportService(users, students, courses, selections, votes, testLogger())
	return svc, users, students, courses, selections, votes
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc, _, _, _, _, _ := newTestReportService(t)

	_, err := svc.Generate(context.Background(), "inventado", nil, nil)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Generate() error = %v, want bad request", err)
	}
}

func TestGenerateOverview(t *testing.T) {
	svc, users, students, _, selections, votes := newTestReportService(t)
	if err := users.CreateWithStudent(context.Background(), &models.User{Email: "admin@example.com", Role: models.RoleAdmin}, nil); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	students.add(1, &models.Student{ID: 1, Age: 18})
	students.add(2, &models.Student{ID: 2, Age: 22})
	if _, err := selections.Create(context.Background(), 1, []int64{1, 2}); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}
	if err := votes.Create(context.Background(), &models.Vote{StudentID: 1, Category: models.CategoryGeneralExperience, Option: "Buena"}); err != nil {
		t.Fatalf("seeding vote: %v", err)
	}

	report, err := svc.Generate(context.Background(), ReportOverview, nil, nil)
	if err != nil {
		t.Fatalf("Generate(overview) error = %v", err)
	}
	overview, ok := report.Data.(*dto.OverviewReport)
	if !ok {
		t.Fatalf("Generate(overview) data type = %T", report.Data)
	}
	if overview.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", overview.TotalUsers)
	}
	if overview.TotalStudents != 2 || overview.TotalCourses != 2 || overview.TotalSelections != 1 || overview.TotalVotes != 1 {
		t.Errorf("overview totals = %+v, want 2 students / 2 courses / 1 selection / 1 vote", overview)
	}
	// One selection of two courses over two students
	if overview.AverageCoursesPerStudent != 1.0 {
		t.Errorf("AverageCoursesPerStudent = %v, want 1.0", overview.AverageCoursesPerStudent)
	}
	if overview.StudentsWithoutCourses != 1 {
		t.Errorf("StudentsWithoutCourses = %d, want 1", overview.StudentsWithoutCourses)
	}
	if overview.CoursesWithoutStudents != 2 {
		t.Errorf("CoursesWithoutStudents = %d, want 2", overview.CoursesWithoutStudents)
	}
}

func TestGenerateOverviewHonorsDateRange(t *testing.T) {
	svc, users, students, _, selections, votes := newTestReportService(t)
	if err := users.CreateWithStudent(context.Background(), &models.User{Email: "ana@example.com", Role: models.RoleStudent}, nil); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	students.add(1, &models.Student{ID: 1, Age: 18})
	if _, err := selections.Create(context.Background(), 1, []int64{1, 2}); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}
	if err := votes.Create(context.Background(), &models.Vote{StudentID: 1, Category: models.CategoryGeneralExperience, Option: "Buena"}); err != nil {
		t.Fatalf("seeding vote: %v", err)
	}

	// A range long before any record was created must produce an empty overview
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	report, err := svc.Generate(context.Background(), ReportOverview, &start, &end)
	if err != nil {
		t.Fatalf("Generate(overview) error = %v", err)
	}
	overview := report.Data.(*dto.OverviewReport)
	if overview.TotalUsers != 0 || overview.TotalStudents != 0 || overview.TotalCourses != 0 ||
		overview.TotalSelections != 0 || overview.TotalVotes != 0 {
		t.Errorf("overview for an empty range = %+v, want all totals zero", overview)
	}

	// A range covering now must report everything
	wideStart := time.Now().Add(-time.Hour)
	wideEnd := time.Now().Add(time.Hour)
	report, err = svc.Generate(context.Background(), ReportOverview, &wideStart, &wideEnd)
	if err != nil {
		t.Fatalf("Generate(overview) error = %v", err)
	}
	overview = report.Data.(*dto.OverviewReport)
	if overview.TotalUsers != 1 || overview.TotalStudents != 1 || overview.TotalCourses != 2 ||
		overview.TotalSelections != 1 || overview.TotalVotes != 1 {
		t.Errorf("overview for a covering range = %+v, want full totals", overview)
	}
}

func TestGenerateCoursesReport(t *testing.T) {
	svc, _, _, courses, _, _ := newTestReportService(t)
	courses.rosters = []repositories.CourseRosterRow{
		{Course: models.Course{ID: 1, Name: "CÁLCULO I", Capacity: 2}, Students: []string{"Ana García", "Luis Pérez"}},
		{Course: models.Course{ID: 2, Name: "FÍSICA I", Capacity: 10}, Students: nil},
	}

	report, err := svc.Generate(context.Background(), ReportCourses, nil, nil)
	if err != nil {
		t.Fatalf("Generate(courses) error = %v", err)
	}
	data := report.Data.(*dto.CoursesReport)
	if len(data.Courses) != 2 {
		t.Fatalf("courses report has %d entries, want 2", len(data.Courses))
	}

	full := data.Courses[0]
	if full.OccupancyRate != 100 || full.AvailableSpots != 0 {
		t.Errorf("full course = %d%% / %d spots, want 100%% / 0", full.OccupancyRate, full.AvailableSpots)
	}
	empty := data.Courses[1]
	if empty.OccupancyRate != 0 || empty.AvailableSpots != 10 {
		t.Errorf("empty course = %d%% / %d spots, want 0%% / 10", empty.OccupancyRate, empty.AvailableSpots)
	}

	if data.Summary.FullCourses != 1 || data.Summary.LowDemandCourses != 1 {
		t.Errorf("summary = %+v, want 1 full / 1 low demand", data.Summary)
	}
	if data.Summary.AverageOccupancy != 50 {
		t.Errorf("AverageOccupancy = %d, want 50", data.Summary.AverageOccupancy)
	}
}

func TestGenerateCoursesReportHonorsDateRange(t *testing.T) {
	svc, _, _, courses, _, _ := newTestReportService(t)
	old := time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC)
	courses.rosters = []repositories.CourseRosterRow{
		{Course: models.Course{ID: 1, Name: "CÁLCULO I", Capacity: 2, CreatedAt: time.Now()}, Students: []string{"Ana García"}},
		{Course: models.Course{ID: 2, Name: "FÍSICA I", Capacity: 10, CreatedAt: old}, Students: nil},
	}

	// The range filters by course creation, not by when selections were made
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	report, err := svc.Generate(context.Background(), ReportCourses, &start, &end)
	if err != nil {
		t.Fatalf("Generate(courses) error = %v", err)
	}
	data := report.Data.(*dto.CoursesReport)
	if len(data.Courses) != 1 || data.Courses[0].Name != "CÁLCULO I" {
		t.Fatalf("courses in range = %+v, want only CÁLCULO I", data.Courses)
	}
}

func TestGenerateStudentsReport(t *testing.T) {
	svc, _, students, _, _, _ := newTestReportService(t)
	students.rows = []repositories.StudentSelectionRow{
		{
			Student: models.Student{ID: 1, Name: "Ana", LastName: "García", IDCard: "27123456", Age: 19},
			Email:   "ana@example.com",
			Courses: []string{"CÁLCULO I", "FÍSICA I"},
		},
		{
			Student: models.Student{ID: 2, Name: "Luis", LastName: "Pérez", IDCard: "28000001", Age: 21},
			Email:   "luis@example.com",
			Courses: nil,
		},
	}

	report, err := svc.Generate(context.Background(), ReportStudents, nil, nil)
	if err != nil {
		t.Fatalf("Generate(students) error = %v", err)
	}
	data := report.Data.(*dto.StudentsReport)
	if data.Summary.TotalStudents != 2 || data.Summary.StudentsWithSelection != 1 {
		t.Errorf("summary = %+v, want 2 students with 1 selection", data.Summary)
	}
	if data.Summary.AverageAge != 20 {
		t.Errorf("AverageAge = %d, want 20", data.Summary.AverageAge)
	}
	if data.Students[0].CoursesCount != 2 || data.Students[0].Email != "ana@example.com" {
		t.Errorf("first entry = %+v, want 2 courses for ana@example.com", data.Students[0])
	}
}

func TestGeneratePreselectionsReport(t *testing.T) {
	svc, _, students, _, selections, _ := newTestReportService(t)
	students.add(1, &models.Student{ID: 1, Name: "Ana", LastName: "García", IDCard: "27123456"})
	if _, err := selections.Create(context.Background(), 1, []int64{1, 2}); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}

	report, err := svc.Generate(context.Background(), ReportPreselections, nil, nil)
	if err != nil {
		t.Fatalf("Generate(preselections) error = %v", err)
	}
	data := report.Data.(*dto.PreselectionsReport)
	if data.Summary.TotalPreselections != 1 || data.Summary.Completed != 1 || data.Summary.Incomplete != 0 {
		t.Errorf("summary = %+v, want one complete preselection", data.Summary)
	}
	if data.Summary.AverageCoursesPerSelection != 2.0 {
		t.Errorf("AverageCoursesPerSelection = %v, want 2.0", data.Summary.AverageCoursesPerSelection)
	}
	entry := data.Preselections[0]
	if entry.Status != "Completa" || len(entry.Courses) != 2 {
		t.Errorf("entry = %+v, want Completa with 2 courses", entry)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, users, students, courses, selections, _ := newTestReportService(t)
	admin := &models.User{Email: "admin@example.com", Role: models.RoleAdmin}
	if err := users.CreateWithStudent(context.Background(), admin, nil); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	alumna := &models.User{Email: "ana@example.com", Role: models.RoleStudent}
	if err := users.CreateWithStudent(context.Background(), alumna, &models.Student{Name: "Ana", LastName: "García", IDCard: "27123456", Age: 19}); err != nil {
		t.Fatalf("seeding student: %v", err)
	}
	students.add(alumna.ID, &models.Student{ID: alumna.ID, Age: 19})
	courses.enrollments[1] = 3
	if _, err := selections.Create(context.Background(), alumna.ID, []int64{1, 2}); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalStudents != 1 || stats.TotalCourses != 2 || stats.TotalSelections != 1 {
		t.Errorf("totals = %+v, want 2 users / 1 student / 2 courses / 1 selection", stats)
	}
	if len(stats.UsersByRole) != 2 || stats.UsersByRole[0].Role != string(models.RoleAdmin) {
		t.Errorf("UsersByRole = %+v, want ADMIN first", stats.UsersByRole)
	}
	if stats.RecentSelections != 1 {
		t.Errorf("RecentSelections = %d, want 1", stats.RecentSelections)
	}
	if stats.AverageAge != 19.0 {
		t.Errorf("AverageAge = %v, want 19.0", stats.AverageAge)
	}
	if len(stats.PopularCourses) == 0 || stats.PopularCourses[0].ID != 1 {
		t.Errorf("PopularCourses = %+v, want course 1 leading", stats.PopularCourses)
	}
}
