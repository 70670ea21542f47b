package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

func newTestPreselectionService(t *testing.T) (*PreselectionService, *fakeStudentStore, *fakeCourseStore, *fakeSelectionStore) {
	t.Helper()
	students := newFakeStudentStore()
	courses := newFakeCourseStore("CÁLCULO I", "FÍSICA I", "PROGRAMACIÓN I")
	selections := newFakeSelectionStore(courses)
	svc := NewPreselectionService(selections, courses, students, testLogger())
	return svc, students, courses, selections
}

func addTestStudent(students *fakeStudentStore, userID int64) *models.Student {
	student := &models.Student{
		ID:       userID,
		Name:     "Ana",
		LastName: "García",
		IDCard:   "27123456",
		Age:      19,
	}
	students.add(userID, student)
	return student
}

func TestPreselectionCreate(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	resp, err := svc.Create(context.Background(), 5, []int64{1, 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(resp.Courses) != 2 {
		t.Fatalf("Create() returned %d courses, want 2", len(resp.Courses))
	}
	if resp.Courses[0].Name != "CÁLCULO I" || resp.Courses[1].Name != "FÍSICA I" {
		t.Errorf("Create() courses = %q, %q; want CÁLCULO I, FÍSICA I",
			resp.Courses[0].Name, resp.Courses[1].Name)
	}
}

func TestPreselectionCreateRejectsWrongCount(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	for _, ids := range [][]int64{{1}, {1, 2, 3}, {}} {
		_, err := svc.Create(context.Background(), 5, ids)
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("Create(%v) error = %v, want bad request", ids, err)
		}
	}
}

func TestPreselectionCreateRejectsDuplicateCourses(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	_, err := svc.Create(context.Background(), 5, []int64{2, 2})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("Create() error = %v, want bad request", err)
	}

	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || custom.Message != "Los cursos seleccionados deben ser distintos" {
		t.Errorf("Create() error message = %v, want distinct courses message", err)
	}
}

func TestPreselectionCreateRejectsUnknownCourse(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	_, err := svc.Create(context.Background(), 5, []int64{1, 99})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Create() error = %v, want bad request", err)
	}
}

func TestPreselectionCreateRejectsSecondSelection(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	if _, err := svc.Create(context.Background(), 5, []int64{1, 2}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := svc.Create(context.Background(), 5, []int64{2, 3})
	if !errors.Is(err, apperrors.ErrSelectionAlreadyExists) {
		t.Errorf("second Create() error = %v, want selection already exists", err)
	}
}

func TestPreselectionCreateWithoutStudentProfile(t *testing.T) {
	svc, _, _, _ := newTestPreselectionService(t)

	_, err := svc.Create(context.Background(), 42, []int64{1, 2})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Create() error = %v, want resource not found", err)
	}
}

func TestPreselectionUpdate(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	if _, err := svc.Create(context.Background(), 5, []int64{1, 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := svc.Update(context.Background(), 5, []int64{2, 3})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if resp.Courses[0].Name != "FÍSICA I" || resp.Courses[1].Name != "PROGRAMACIÓN I" {
		t.Errorf("Update() courses = %q, %q; want FÍSICA I, PROGRAMACIÓN I",
			resp.Courses[0].Name, resp.Courses[1].Name)
	}
}

func TestPreselectionUpdateWithoutExistingSelection(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	_, err := svc.Update(context.Background(), 5, []int64{1, 2})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Update() error = %v, want resource not found", err)
	}
}

func TestPreselectionGetStatus(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	status, err := svc.GetStatus(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status.HasPreselection {
		t.Error("GetStatus() HasPreselection = true before any selection")
	}
	if status.Student != "Ana García" {
		t.Errorf("GetStatus() student = %q, want Ana García", status.Student)
	}
	if len(status.Courses) != 3 {
		t.Errorf("GetStatus() returned %d courses, want 3", len(status.Courses))
	}

	if _, err := svc.Create(context.Background(), 5, []int64{1, 3}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	status, err = svc.GetStatus(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !status.HasPreselection || status.CurrentSelection == nil {
		t.Fatal("GetStatus() did not report the registered selection")
	}
	if len(status.CurrentSelection.Courses) != 2 {
		t.Errorf("GetStatus() selection has %d courses, want 2", len(status.CurrentSelection.Courses))
	}
}

func TestPreselectionListAll(t *testing.T) {
	svc, students, _, selections := newTestPreselectionService(t)
	first := addTestStudent(students, 5)
	second := &models.Student{ID: 6, Name: "Luis", LastName: "Pérez", IDCard: "28000001", Age: 21}
	students.add(6, second)

	if _, err := svc.Create(context.Background(), 5, []int64{1, 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), 6, []int64{2, 3}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	selections.byStudentID[5].Student = first
	selections.byStudentID[6].Student = second

	entries, pagination, err := svc.ListAll(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListAll() returned %d entries, want 2", len(entries))
	}
	if pagination.TotalItems != 2 || pagination.TotalPages != 1 {
		t.Errorf("ListAll() pagination = %+v, want 2 items on 1 page", pagination)
	}
	for _, entry := range entries {
		if len(entry.Courses) != 2 {
			t.Errorf("entry %d has %d courses, want 2", entry.ID, len(entry.Courses))
		}
	}

	entries, pagination, err = svc.ListAll(context.Background(), "luis", 1, 10)
	if err != nil {
		t.Fatalf("ListAll(luis) error = %v", err)
	}
	if len(entries) != 1 || pagination.TotalItems != 1 {
		t.Fatalf("ListAll(luis) returned %d entries (total %d), want 1", len(entries), pagination.TotalItems)
	}
	if entries[0].Student.Name != "Luis" {
		t.Errorf("ListAll(luis) student = %q, want Luis", entries[0].Student.Name)
	}
}

func TestPreselectionDelete(t *testing.T) {
	svc, students, _, _ := newTestPreselectionService(t)
	addTestStudent(students, 5)

	selection, err := svc.Create(context.Background(), 5, []int64{1, 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), selection.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	status, err := svc.GetStatus(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status.HasPreselection {
		t.Error("GetStatus() still reports a selection after Delete()")
	}

	err = svc.Delete(context.Background(), selection.ID)
	if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Delete() on a removed selection = %v, want not found", err)
	}
}
