package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/app/repositories"
	"github.com/glon/summercourse/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. Using fakes instead of a mock
// framework keeps the tests readable: the behavior is right here.

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// createdInRange mirrors the repositories' optional creation date filter
func createdInRange(createdAt time.Time, start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !createdAt.Before(*start) && !createdAt.After(*end)
}

// ---- students ----

type fakeStudentStore struct {
	byUserID   map[int64]*models.Student
	rows       []repositories.StudentSelectionRow
	selections *fakeSelectionStore
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{byUserID: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) add(userID int64, student *models.Student) {
	student.UserID = userID
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}
	f.byUserID[userID] = student
}

func (f *fakeStudentStore) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	for _, existing := range f.byUserID {
		if existing.ID == student.ID {
			*existing = *student
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) ListWithCourses(ctx context.Context, start, end *time.Time) ([]repositories.StudentSelectionRow, error) {
	return f.rows, nil
}

func (f *fakeStudentStore) CountStudents(ctx context.Context, start, end *time.Time) (int, error) {
	if len(f.byUserID) > 0 {
		count := 0
		for _, student := range f.byUserID {
			if createdInRange(student.CreatedAt, start, end) {
				count++
			}
		}
		return count, nil
	}
	return len(f.rows), nil
}

func (f *fakeStudentStore) CountWithSelection(ctx context.Context, start, end *time.Time) (int, error) {
	if f.selections == nil {
		return 0, nil
	}
	count := 0
	for _, student := range f.byUserID {
		if !createdInRange(student.CreatedAt, start, end) {
			continue
		}
		if _, ok := f.selections.byStudentID[student.ID]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentStore) AverageAge(ctx context.Context) (float64, error) {
	if len(f.byUserID) == 0 {
		return 0, nil
	}
	total := 0
	for _, student := range f.byUserID {
		total += student.Age
	}
	return float64(total) / float64(len(f.byUserID)), nil
}

// ---- courses ----

type fakeCourseStore struct {
	courses     []models.Course
	enrollments map[int64]int
	rosters     []repositories.CourseRosterRow
	nextID      int64
}

func newFakeCourseStore(names ...string) *fakeCourseStore {
	f := &fakeCourseStore{enrollments: make(map[int64]int), nextID: 1}
	for _, name := range names {
		f.courses = append(f.courses, models.Course{ID: f.nextID, Name: name, Capacity: 30, CreatedAt: time.Now()})
		f.nextID++
	}
	return f
}

func (f *fakeCourseStore) Create(ctx context.Context, course *models.Course) error {
	for _, existing := range f.courses {
		if existing.Name == course.Name {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	course.ID = f.nextID
	f.nextID++
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	f.courses = append(f.courses, *course)
	return nil
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	for i := range f.courses {
		if f.courses[i].ID == id {
			course := f.courses[i]
			return &course, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) GetAll(ctx context.Context) ([]models.Course, error) {
	sorted := make([]models.Course, len(f.courses))
	copy(sorted, f.courses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted, nil
}

func (f *fakeCourseStore) ListWithSelectionCounts(ctx context.Context) ([]repositories.CourseDemandRow, error) {
	rows := make([]repositories.CourseDemandRow, 0, len(f.courses))
	for _, course := range f.courses {
		rows = append(rows, repositories.CourseDemandRow{Course: course, Selections: f.enrollments[course.ID]})
	}
	return rows, nil
}

func (f *fakeCourseStore) TopByDemand(ctx context.Context, limit int) ([]repositories.CourseDemandRow, error) {
	rows, _ := f.ListWithSelectionCounts(ctx)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Selections > rows[j].Selections })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeCourseStore) AllExist(ctx context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		if _, err := f.GetByID(ctx, id); err != nil {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeCourseStore) EnrollmentCount(ctx context.Context, courseID int64) (int, error) {
	return f.enrollments[courseID], nil
}

func (f *fakeCourseStore) Update(ctx context.Context, course *models.Course) error {
	for _, existing := range f.courses {
		if existing.Name == course.Name && existing.ID != course.ID {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	for i := range f.courses {
		if f.courses[i].ID == course.ID {
			f.courses[i] = *course
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) Delete(ctx context.Context, id int64) error {
	if f.enrollments[id] > 0 {
		return apperrors.ErrCourseHasEnrollment
	}
	for i := range f.courses {
		if f.courses[i].ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) ListWithRosters(ctx context.Context, start, end *time.Time) ([]repositories.CourseRosterRow, error) {
	var result []repositories.CourseRosterRow
	for _, row := range f.rosters {
		if createdInRange(row.Course.CreatedAt, start, end) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeCourseStore) CountCourses(ctx context.Context, start, end *time.Time) (int, error) {
	count := 0
	for _, course := range f.courses {
		if createdInRange(course.CreatedAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeCourseStore) CountWithSelection(ctx context.Context, start, end *time.Time) (int, error) {
	count := 0
	for _, course := range f.courses {
		if createdInRange(course.CreatedAt, start, end) && f.enrollments[course.ID] > 0 {
			count++
		}
	}
	return count, nil
}

// ---- selections ----

type fakeSelectionStore struct {
	byStudentID map[int64]*models.CourseSelection
	courses     *fakeCourseStore
	nextID      int64
}

func newFakeSelectionStore(courses *fakeCourseStore) *fakeSelectionStore {
	return &fakeSelectionStore{
		byStudentID: make(map[int64]*models.CourseSelection),
		courses:     courses,
		nextID:      1,
	}
}

func (f *fakeSelectionStore) resolve(courseIDs []int64) []models.Course {
	var result []models.Course
	for _, id := range courseIDs {
		if course, err := f.courses.GetByID(context.Background(), id); err == nil {
			result = append(result, *course)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (f *fakeSelectionStore) Create(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error) {
	if _, ok := f.byStudentID[studentID]; ok {
		return nil, apperrors.ErrSelectionAlreadyExists
	}
	selection := &models.CourseSelection{
		ID:              f.nextID,
		StudentID:       studentID,
		SelectionDate:   time.Now(),
		CreatedAt:       time.Now(),
		SelectedCourses: f.resolve(courseIDs),
	}
	f.nextID++
	f.byStudentID[studentID] = selection
	return selection, nil
}

func (f *fakeSelectionStore) Replace(ctx context.Context, studentID int64, courseIDs []int64) (*models.CourseSelection, error) {
	selection, ok := f.byStudentID[studentID]
	if !ok {
		return nil, apperrors.ErrSelectionNotFound
	}
	selection.SelectionDate = time.Now()
	selection.SelectedCourses = f.resolve(courseIDs)
	return selection, nil
}

func (f *fakeSelectionStore) GetByStudentID(ctx context.Context, studentID int64) (*models.CourseSelection, error) {
	selection, ok := f.byStudentID[studentID]
	if !ok {
		return nil, apperrors.ErrSelectionNotFound
	}
	return selection, nil
}

func (f *fakeSelectionStore) ListWithDetails(ctx context.Context, start, end *time.Time) ([]*models.CourseSelection, error) {
	var result []*models.CourseSelection
	for _, selection := range f.byStudentID {
		result = append(result, selection)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeSelectionStore) SearchWithDetails(ctx context.Context, search string, offset uint64, limit int) ([]*models.CourseSelection, int64, error) {
	var matched []*models.CourseSelection
	for _, selection := range f.byStudentID {
		if search != "" {
			if selection.Student == nil || !studentMatches(selection.Student, search) {
				continue
			}
		}
		matched = append(matched, selection)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SelectionDate.After(matched[j].SelectionDate) })

	total := int64(len(matched))
	if int(offset) >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func studentMatches(student *models.Student, search string) bool {
	needle := strings.ToLower(search)
	haystacks := []string{student.Name, student.LastName, student.IDCard}
	if student.User != nil {
		haystacks = append(haystacks, student.User.Email)
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func (f *fakeSelectionStore) DeleteByID(ctx context.Context, id int64) error {
	for studentID, selection := range f.byStudentID {
		if selection.ID == id {
			delete(f.byStudentID, studentID)
			return nil
		}
	}
	return apperrors.ErrSelectionNotFound
}

func (f *fakeSelectionStore) CountSelections(ctx context.Context, start, end *time.Time) (int, error) {
	count := 0
	for _, selection := range f.byStudentID {
		if createdInRange(selection.CreatedAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeSelectionStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	for _, selection := range f.byStudentID {
		if !selection.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ---- votes ----

type fakeVoteStore struct {
	votes  []*models.Vote
	nextID int64
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{nextID: 1}
}

func (f *fakeVoteStore) find(studentID int64, category string) *models.Vote {
	for _, vote := range f.votes {
		if vote.StudentID == studentID && vote.Category == category {
			return vote
		}
	}
	return nil
}

func (f *fakeVoteStore) Create(ctx context.Context, vote *models.Vote) error {
	if f.find(vote.StudentID, vote.Category) != nil {
		return apperrors.ErrVoteAlreadyExists
	}
	vote.ID = f.nextID
	f.nextID++
	vote.CreatedAt = time.Now()
	vote.UpdatedAt = vote.CreatedAt
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeVoteStore) Update(ctx context.Context, vote *models.Vote) error {
	existing := f.find(vote.StudentID, vote.Category)
	if existing == nil {
		return apperrors.ErrVoteNotFound
	}
	existing.Option = vote.Option
	existing.Comment = vote.Comment
	existing.UpdatedAt = time.Now()
	*vote = *existing
	return nil
}

func (f *fakeVoteStore) GetByStudent(ctx context.Context, studentID int64) ([]*models.Vote, error) {
	var result []*models.Vote
	for _, vote := range f.votes {
		if vote.StudentID == studentID {
			result = append(result, vote)
		}
	}
	return result, nil
}

func (f *fakeVoteStore) CountVotes(ctx context.Context, start, end *time.Time) (int, error) {
	count := 0
	for _, vote := range f.votes {
		if createdInRange(vote.CreatedAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeVoteStore) CountVoters(ctx context.Context) (int, error) {
	seen := make(map[int64]bool)
	for _, vote := range f.votes {
		seen[vote.StudentID] = true
	}
	return len(seen), nil
}

func (f *fakeVoteStore) Distribution(ctx context.Context) ([]repositories.DistributionRow, error) {
	counts := make(map[string]map[string]int)
	for _, vote := range f.votes {
		if counts[vote.Category] == nil {
			counts[vote.Category] = make(map[string]int)
		}
		counts[vote.Category][vote.Option]++
	}
	var rows []repositories.DistributionRow
	for category, options := range counts {
		for option, count := range options {
			rows = append(rows, repositories.DistributionRow{Category: category, Option: option, Count: count})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Count > rows[j].Count
	})
	return rows, nil
}

func (f *fakeVoteStore) Recent(ctx context.Context, since time.Time, limit int) ([]*models.Vote, error) {
	var result []*models.Vote
	for _, vote := range f.votes {
		if !vote.CreatedAt.Before(since) {
			result = append(result, vote)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeVoteStore) Comments(ctx context.Context, limit int) ([]repositories.CommentRow, error) {
	var rows []repositories.CommentRow
	for _, vote := range f.votes {
		if vote.Comment != nil && *vote.Comment != "" {
			rows = append(rows, repositories.CommentRow{
				Category:  vote.Category,
				Comment:   *vote.Comment,
				CreatedAt: vote.CreatedAt,
			})
		}
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeVoteStore) DailyTrend(ctx context.Context, since time.Time) ([]repositories.TrendRow, error) {
	counts := make(map[string]repositories.TrendRow)
	for _, vote := range f.votes {
		if vote.CreatedAt.Before(since) {
			continue
		}
		day := vote.CreatedAt.Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		row := counts[key]
		row.Day = day
		row.Count++
		counts[key] = row
	}
	var rows []repositories.TrendRow
	for _, row := range counts {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows, nil
}

func (f *fakeVoteStore) DeleteAll(ctx context.Context) (int64, error) {
	deleted := int64(len(f.votes))
	f.votes = nil
	return deleted, nil
}

// ---- users ----

type fakeUserStore struct {
	byEmail map[string]*models.User
	idCards map[string]bool
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		idCards: make(map[string]bool),
		nextID:  1,
	}
}

func (f *fakeUserStore) CreateWithStudent(ctx context.Context, user *models.User, student *models.Student) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	if student != nil && f.idCards[student.IDCard] {
		return apperrors.ErrIDCardAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	if student != nil {
		student.ID = user.ID
		student.UserID = user.ID
		user.Student = student
		f.idCards[student.IDCard] = true
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) ListProfiles(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, user := range f.byEmail {
		if role != "" && string(user.Role) != role {
			continue
		}
		if search != "" && !strings.Contains(user.Email, search) {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if int(offset) >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeUserStore) CountUsers(ctx context.Context, start, end *time.Time) (int, error) {
	count := 0
	for _, user := range f.byEmail {
		if createdInRange(user.CreatedAt, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) CountByRole(ctx context.Context) (map[models.RoleType]int, error) {
	counts := make(map[models.RoleType]int)
	for _, user := range f.byEmail {
		counts[user.Role]++
	}
	return counts, nil
}

// ---- tokens ----

type tokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*tokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, error) {
	record, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if record.expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return record.userID, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	record, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, record := range f.tokens {
		if record.userID == userID {
			record.revoked = true
		}
	}
	return nil
}
