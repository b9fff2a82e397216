package service

import (
	"math/rand"
	"time"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	defaultRandom    = 10
	maxRandom        = 50
)

// QuestionFilters is the caller-supplied filter set for question queries.
type QuestionFilters struct {
	TestType   string
	Section    string
	Difficulty string
	Tags       []string
}

// QuestionPage is one page of filtered questions. NextCursor is the id of
// the first excluded row and is zero on the last page.
type QuestionPage struct {
	Questions  []model.Question `json:"questions"`
	NextCursor uint             `json:"next_cursor,omitempty"`
}

// AnswerResult is returned for every submission, correct or not, so the
// caller can show immediate feedback.
type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type QuestionService interface {
	GetByID(id uint) (*model.Question, error)
	GetByFilters(filters QuestionFilters, limit int, cursor uint) (*QuestionPage, error)
	GetRandom(filters QuestionFilters, count int) ([]model.Question, error)
	SubmitAnswer(userID, questionID uint, userAnswer string, timeSpent int, testAttemptID uint) (*AnswerResult, error)
	Bookmark(userID, questionID uint, notes string) (*model.Bookmark, error)
	RemoveBookmark(userID, questionID uint) error
	GetBookmarked(userID uint) ([]model.Bookmark, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	progressRepo repository.ProgressRepository
	attemptRepo  repository.TestAttemptRepository
	bookmarkRepo repository.BookmarkRepository
	pageSize     int
	rng          *rand.Rand
	now          func() time.Time
}

// NewQuestionService builds the question service. pageSize is the default
// page limit applied when the caller omits one; out-of-range values fall
// back to the built-in default.
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	progressRepo repository.ProgressRepository,
	attemptRepo repository.TestAttemptRepository,
	bookmarkRepo repository.BookmarkRepository,
	pageSize int,
) QuestionService {
	if pageSize < 1 || pageSize > maxPageLimit {
		pageSize = defaultPageLimit
	}
	return &questionService{
		questionRepo: questionRepo,
		progressRepo: progressRepo,
		attemptRepo:  attemptRepo,
		bookmarkRepo: bookmarkRepo,
		pageSize:     pageSize,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

func (s *questionService) GetByID(id uint) (*model.Question, error) {
	return s.questionRepo.GetQuestionByID(id)
}

func (s *questionService) GetByFilters(filters QuestionFilters, limit int, cursor uint) (*QuestionPage, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = s.pageSize
		if limit == 0 {
			limit = defaultPageLimit
		}
	}
	if limit < 1 || limit > maxPageLimit {
		return nil, apperr.Validation("limit must be between 1 and %d", maxPageLimit)
	}

	// Fetch one extra row; if present it becomes the next cursor.
	questions, err := s.questionRepo.ListQuestions(repoFilter(filters), limit+1, cursor)
	if err != nil {
		return nil, err
	}

	if questions == nil {
		questions = []model.Question{}
	}
	page := &QuestionPage{Questions: questions}
	if len(questions) > limit {
		page.NextCursor = questions[limit].ID
		page.Questions = questions[:limit]
	}
	return page, nil
}

func (s *questionService) GetRandom(filters QuestionFilters, count int) ([]model.Question, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}
	if count == 0 {
		count = defaultRandom
	}
	if count < 1 || count > maxRandom {
		return nil, apperr.Validation("count must be between 1 and %d", maxRandom)
	}

	filter := repoFilter(filters)
	total, err := s.questionRepo.CountQuestions(filter)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []model.Question{}, nil
	}

	// Independent uniform offsets. Collisions can yield fewer than count
	// questions; callers tolerate short results.
	seen := make(map[uint]struct{}, count)
	questions := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		offset := s.rng.Intn(int(total))
		question, err := s.questionRepo.GetQuestionAtOffset(filter, offset)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[question.ID]; dup {
			continue
		}
		seen[question.ID] = struct{}{}
		questions = append(questions, *question)
	}
	return questions, nil
}

func (s *questionService) SubmitAnswer(userID, questionID uint, userAnswer string, timeSpent int, testAttemptID uint) (*AnswerResult, error) {
	if timeSpent < 0 {
		return nil, apperr.Validation("time spent cannot be negative")
	}

	question, err := s.questionRepo.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	// Exact, case-sensitive match against the stored answer.
	isCorrect := question.CorrectAnswer == userAnswer

	if testAttemptID != 0 {
		// The attempt must exist and belong to the submitting user.
		if _, err := s.attemptRepo.GetTestAttempt(testAttemptID, userID); err != nil {
			return nil, err
		}
		attempt := &model.QuestionAttempt{
			TestAttemptID: testAttemptID,
			QuestionID:    questionID,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
			TimeSpent:     timeSpent,
		}
		if err := s.attemptRepo.CreateQuestionAttempt(attempt); err != nil {
			return nil, err
		}
	}

	if err := s.progressRepo.RecordAttempt(userID, question.TestType, question.Section, isCorrect, s.now()); err != nil {
		return nil, err
	}

	return &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}, nil
}

func (s *questionService) Bookmark(userID, questionID uint, notes string) (*model.Bookmark, error) {
	if _, err := s.questionRepo.GetQuestionByID(questionID); err != nil {
		return nil, err
	}
	bookmark := &model.Bookmark{
		UserID:     userID,
		QuestionID: questionID,
		Notes:      notes,
	}
	if err := s.bookmarkRepo.CreateBookmark(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *questionService) RemoveBookmark(userID, questionID uint) error {
	return s.bookmarkRepo.DeleteBookmark(userID, questionID)
}

func (s *questionService) GetBookmarked(userID uint) ([]model.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.ListBookmarks(userID)
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

func validateFilters(filters QuestionFilters) error {
	if !model.ValidTestType(filters.TestType) {
		return apperr.Validation("unknown test type %q", filters.TestType)
	}
	if filters.Difficulty != "" && !model.ValidDifficulty(filters.Difficulty) {
		return apperr.Validation("unknown difficulty %q", filters.Difficulty)
	}
	return nil
}

func repoFilter(filters QuestionFilters) repository.QuestionFilter {
	return repository.QuestionFilter{
		TestType:   filters.TestType,
		Section:    filters.Section,
		Difficulty: filters.Difficulty,
		Tags:       filters.Tags,
	}
}
