package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/models/dto"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

func newTestVoteService(t *testing.T) (*VoteService, *fakeStudentStore, *fakeCourseStore, *fakeVoteStore) {
	t.Helper()
	students := newFakeStudentStore()
	courses := newFakeCourseStore("CÁLCULO I", "FÍSICA I")
	votes := newFakeVoteStore()
	svc := NewVoteService(votes, courses, students, testLogger())
	return svc, students, courses, votes
}

func TestVoteCast(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	resp, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{
		Category: models.CategoryBestCourse,
		Option:   "CÁLCULO I",
	})
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if resp.Category != models.CategoryBestCourse || resp.Option != "CÁLCULO I" {
		t.Errorf("Cast() = %s/%s, want mejor_curso/CÁLCULO I", resp.Category, resp.Option)
	}
}

func TestVoteCastTwiceInCategory(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	req := &dto.VoteRequest{Category: models.CategoryGeneralExperience, Option: "Buena"}
	if _, err := svc.Cast(context.Background(), 5, req); err != nil {
		t.Fatalf("first Cast() error = %v", err)
	}
	_, err := svc.Cast(context.Background(), 5, req)
	if !errors.Is(err, apperrors.ErrVoteAlreadyExists) {
		t.Errorf("second Cast() error = %v, want vote already exists", err)
	}
}

func TestVoteCastValidatesOptions(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	cases := []struct {
		name     string
		category string
		option   string
	}{
		{"unknown course", models.CategoryBestCourse, "ASTRONOMÍA I"},
		{"unknown experience", models.CategoryGeneralExperience, "Fantástica"},
		{"empty option", models.CategoryBestProfessor, "   "},
		{"unknown category", "mejor_cafeteria", "La del edificio B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{Category: tc.category, Option: tc.option})
			if !errors.Is(err, apperrors.ErrBadRequest) {
				t.Errorf("Cast(%s, %q) error = %v, want bad request", tc.category, tc.option, err)
			}
		})
	}
}

func TestVoteCastProfessorIsFreeText(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	resp, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{
		Category: models.CategoryBestProfessor,
		Option:   "Prof. María Rodríguez",
	})
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if resp.Option != "Prof. María Rodríguez" {
		t.Errorf("Cast() option = %q, want free-text name kept", resp.Option)
	}
}

func TestVoteChange(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	if _, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{Category: models.CategoryGeneralExperience, Option: "Regular"}); err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	resp, err := svc.Change(context.Background(), 5, &dto.VoteRequest{Category: models.CategoryGeneralExperience, Option: "Excelente"})
	if err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	if resp.Option != "Excelente" {
		t.Errorf("Change() option = %q, want Excelente", resp.Option)
	}
}

func TestVoteChangeWithoutExistingVote(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	_, err := svc.Change(context.Background(), 5, &dto.VoteRequest{Category: models.CategoryGeneralExperience, Option: "Buena"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Change() error = %v, want resource not found", err)
	}
}

func TestVoteGetCategories(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	if _, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{Category: models.CategoryBestCourse, Option: "FÍSICA I"}); err != nil {
		t.Fatalf("Cast() error = %v", err)
	}

	resp, err := svc.GetCategories(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetCategories() error = %v", err)
	}
	if len(resp.Categories) != 3 {
		t.Fatalf("GetCategories() returned %d categories, want 3", len(resp.Categories))
	}

	byID := make(map[string]dto.VoteCategory)
	for _, category := range resp.Categories {
		byID[category.ID] = category
	}

	best := byID[models.CategoryBestCourse]
	if !best.HasVoted || best.Vote == nil || best.Vote.Option != "FÍSICA I" {
		t.Error("mejor_curso does not reflect the cast vote")
	}
	if len(best.Options) != 2 {
		t.Errorf("mejor_curso has %d options, want one per course", len(best.Options))
	}
	if best.Options[0].ID != "calculo-i" {
		t.Errorf("course option slug = %q, want calculo-i", best.Options[0].ID)
	}

	if professor := byID[models.CategoryBestProfessor]; len(professor.Options) != 0 || professor.HasVoted {
		t.Error("mejor_profesor should have no options and no vote")
	}
	if experience := byID[models.CategoryGeneralExperience]; len(experience.Options) != 4 {
		t.Errorf("experiencia_general has %d options, want 4", len(experience.Options))
	}
}

func TestVoteStatistics(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	for userID := int64(1); userID <= 4; userID++ {
		students.add(userID, &models.Student{ID: userID, Name: "Est", LastName: "Test", Age: 20})
	}

	comment := "Muy buen curso"
	votes := []*dto.VoteRequest{
		{Category: models.CategoryGeneralExperience, Option: "Excelente", Comment: &comment},
		{Category: models.CategoryGeneralExperience, Option: "Excelente"},
		{Category: models.CategoryGeneralExperience, Option: "Mala"},
	}
	for i, req := range votes {
		if _, err := svc.Cast(context.Background(), int64(i+1), req); err != nil {
			t.Fatalf("Cast() error = %v", err)
		}
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalVotes != 3 || stats.TotalVoters != 3 || stats.TotalStudents != 4 {
		t.Errorf("totals = %d votes / %d voters / %d students, want 3/3/4",
			stats.TotalVotes, stats.TotalVoters, stats.TotalStudents)
	}
	if stats.ParticipationRate != 75.0 {
		t.Errorf("ParticipationRate = %v, want 75.0", stats.ParticipationRate)
	}

	var experience dto.CategoryStats
	for _, category := range stats.Categories {
		if category.Category == models.CategoryGeneralExperience {
			experience = category
		}
	}
	if experience.Total != 3 || len(experience.Options) != 2 {
		t.Fatalf("experiencia_general = %d total / %d options, want 3/2", experience.Total, len(experience.Options))
	}
	if experience.Options[0].Option != "Excelente" || experience.Options[0].Percentage != 66.7 {
		t.Errorf("top option = %q at %v%%, want Excelente at 66.7", experience.Options[0].Option, experience.Options[0].Percentage)
	}

	if len(stats.RecentVotes) != 3 {
		t.Errorf("RecentVotes = %d, want 3", len(stats.RecentVotes))
	}
	if len(stats.Comments) != 1 || stats.Comments[0].Comment != comment {
		t.Errorf("Comments = %v, want the single comment", stats.Comments)
	}
	if len(stats.Trend) != 1 || stats.Trend[0].Count != 3 {
		t.Errorf("Trend = %v, want one day with 3 votes", stats.Trend)
	}
}

func TestVoteReset(t *testing.T) {
	svc, students, _, _ := newTestVoteService(t)
	addTestStudent(students, 5)

	if _, err := svc.Cast(context.Background(), 5, &dto.VoteRequest{Category: models.CategoryGeneralExperience, Option: "Buena"}); err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	deleted, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Reset() deleted = %d, want 1", deleted)
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalVotes != 0 {
		t.Errorf("TotalVotes after reset = %d, want 0", stats.TotalVotes)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MATEMÁTICA I", "matematica-i"},
		{"Experiencia General", "experiencia-general"},
		{"  Señales y Sistemas  ", "senales-y-sistemas"},
		{"PROGRAMACIÓN III", "programacion-iii"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
