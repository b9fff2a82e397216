package service

import (
	"fmt"
	"sort"
	"time"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
)

// In-memory repository fakes mirroring the store contracts the gorm
// implementations provide.

type fakeQuestionRepo struct {
	questions   []model.Question
	offsetCalls int
}

func (f *fakeQuestionRepo) CreateQuestion(q *model.Question) error {
	if q.ID == 0 {
		q.ID = uint(len(f.questions) + 1)
	}
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeQuestionRepo) GetQuestionByID(id uint) (*model.Question, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, apperr.NotFound("question %d not found", id)
}

func (f *fakeQuestionRepo) matching(filter repository.QuestionFilter) []model.Question {
	var out []model.Question
	for _, q := range f.questions {
		if q.TestType != filter.TestType {
			continue
		}
		if filter.Section != "" && q.Section != filter.Section {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(q.Tags, filter.Tags) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func hasAnyTag(have model.StringArray, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakeQuestionRepo) ListQuestions(filter repository.QuestionFilter, limit int, cursor uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.matching(filter) {
		if cursor > 0 && q.ID > cursor {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) CountQuestions(filter repository.QuestionFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f *fakeQuestionRepo) GetQuestionAtOffset(filter repository.QuestionFilter, offset int) (*model.Question, error) {
	f.offsetCalls++
	matches := f.matching(filter)
	if offset < 0 || offset >= len(matches) {
		return nil, apperr.NotFound("no question at offset %d", offset)
	}
	q := matches[offset]
	return &q, nil
}

func (f *fakeQuestionRepo) CountAllQuestions() (int64, error) {
	return int64(len(f.questions)), nil
}

type fakeProgressRepo struct {
	rows    []model.Progress
	listErr error
}

func progressKey(userID uint, testType, section string) string {
	return fmt.Sprintf("%d/%s/%s", userID, testType, section)
}

func (f *fakeProgressRepo) RecordAttempt(userID uint, testType, section string, correct bool, practicedAt time.Time) error {
	inc := 0
	if correct {
		inc = 1
	}
	for i := range f.rows {
		r := &f.rows[i]
		if progressKey(r.UserID, r.TestType, r.Section) == progressKey(userID, testType, section) {
			r.QuestionsAttempted++
			r.QuestionsCorrect += inc
			r.AverageScore = float64(r.QuestionsCorrect) * 100 / float64(r.QuestionsAttempted)
			r.LastPracticed = practicedAt
			return nil
		}
	}
	f.rows = append(f.rows, model.Progress{
		ID:                 uint(len(f.rows) + 1),
		UserID:             userID,
		TestType:           testType,
		Section:            section,
		QuestionsAttempted: 1,
		QuestionsCorrect:   inc,
		AverageScore:       float64(inc) * 100,
		LastPracticed:      practicedAt,
	})
	return nil
}

func (f *fakeProgressRepo) GetBySection(userID uint, testType, section string) (*model.Progress, error) {
	for i := range f.rows {
		r := f.rows[i]
		if r.UserID == userID && r.TestType == testType && r.Section == section {
			return &r, nil
		}
	}
	return nil, apperr.NotFound("no progress for %s/%s", testType, section)
}

func (f *fakeProgressRepo) ListByUserAndType(userID uint, testType string) ([]model.Progress, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Progress
	for _, r := range f.rows {
		if r.UserID == userID && r.TestType == testType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) ListByUser(userID uint) ([]model.Progress, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Progress
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) ListByScore(userID uint, testType string, ascending bool, limit int) ([]model.Progress, error) {
	rows, _ := f.ListByUserAndType(userID, testType)
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return rows[i].AverageScore < rows[j].AverageScore
		}
		return rows[i].AverageScore > rows[j].AverageScore
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeProgressRepo) ListPracticedSince(userID uint, since time.Time) ([]model.Progress, error) {
	var out []model.Progress
	for _, r := range f.rows {
		if r.UserID == userID && !r.LastPracticed.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts         []model.TestAttempt
	questionAttempts []model.QuestionAttempt
	countErr         error
}

func (f *fakeAttemptRepo) CreateTestAttempt(a *model.TestAttempt) error {
	if a.ID == 0 {
		a.ID = uint(len(f.attempts) + 1)
	}
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeAttemptRepo) GetTestAttempt(id, userID uint) (*model.TestAttempt, error) {
	for i := range f.attempts {
		if f.attempts[i].ID == id && f.attempts[i].UserID == userID {
			a := f.attempts[i]
			return &a, nil
		}
	}
	return nil, apperr.NotFound("test attempt %d not found", id)
}

func (f *fakeAttemptRepo) UpdateTestAttempt(a *model.TestAttempt) error {
	for i := range f.attempts {
		if f.attempts[i].ID == a.ID {
			f.attempts[i] = *a
			return nil
		}
	}
	return apperr.NotFound("test attempt %d not found", a.ID)
}

func (f *fakeAttemptRepo) ListTestAttempts(userID uint, testType string, limit int) ([]model.TestAttempt, error) {
	var out []model.TestAttempt
	for _, a := range f.attempts {
		if a.UserID != userID {
			continue
		}
		if testType != "" && a.TestType != testType {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttemptRepo) ListCompleted(userID uint, testType string) ([]model.TestAttempt, error) {
	var out []model.TestAttempt
	for _, a := range f.attempts {
		if a.UserID == userID && a.TestType == testType && a.CompletedAt != nil {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(*out[j].CompletedAt) })
	return out, nil
}

func (f *fakeAttemptRepo) CountCompleted(userID uint) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, a := range f.attempts {
		if a.UserID == userID && a.CompletedAt != nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) CreateQuestionAttempt(qa *model.QuestionAttempt) error {
	if qa.ID == 0 {
		qa.ID = uint(len(f.questionAttempts) + 1)
	}
	if qa.CreatedAt.IsZero() {
		qa.CreatedAt = time.Now()
	}
	f.questionAttempts = append(f.questionAttempts, *qa)
	return nil
}

func (f *fakeAttemptRepo) ListQuestionAttempts(testAttemptID uint) ([]model.QuestionAttempt, error) {
	var out []model.QuestionAttempt
	for _, qa := range f.questionAttempts {
		if qa.TestAttemptID == testAttemptID {
			out = append(out, qa)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) ListQuestionAttemptsSince(userID uint, since time.Time) ([]model.QuestionAttempt, error) {
	owned := make(map[uint]bool)
	for _, a := range f.attempts {
		if a.UserID == userID {
			owned[a.ID] = true
		}
	}
	var out []model.QuestionAttempt
	for _, qa := range f.questionAttempts {
		if owned[qa.TestAttemptID] && !qa.CreatedAt.Before(since) {
			out = append(out, qa)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeBookmarkRepo struct {
	bookmarks []model.Bookmark
}

func (f *fakeBookmarkRepo) CreateBookmark(b *model.Bookmark) error {
	for _, existing := range f.bookmarks {
		if existing.UserID == b.UserID && existing.QuestionID == b.QuestionID {
			return apperr.Conflict("question %d is already bookmarked", b.QuestionID)
		}
	}
	if b.ID == 0 {
		b.ID = uint(len(f.bookmarks) + 1)
	}
	f.bookmarks = append(f.bookmarks, *b)
	return nil
}

func (f *fakeBookmarkRepo) DeleteBookmark(userID, questionID uint) error {
	for i, b := range f.bookmarks {
		if b.UserID == userID && b.QuestionID == questionID {
			f.bookmarks = append(f.bookmarks[:i], f.bookmarks[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("bookmark for question %d not found", questionID)
}

func (f *fakeBookmarkRepo) ListBookmarks(userID uint) ([]model.Bookmark, error) {
	var out []model.Bookmark
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookmarkRepo) CountBookmarks(userID uint) (int64, error) {
	var n int64
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) CreateUser(u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperr.Conflict("email %s is already registered", u.Email)
		}
	}
	if u.ID == 0 {
		u.ID = uint(len(f.users) + 1)
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user %d not found", id)
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user %s not found", email)
}

func (f *fakeUserRepo) UpdateUser(u *model.User) error {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return apperr.NotFound("user %d not found", u.ID)
}
