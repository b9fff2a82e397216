package service

import (
	"math"
	"time"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
)

const (
	defaultTestLimit = 10
	maxTestLimit     = 50
	statsWindow      = 5
)

// TestStats summarizes a user's completed attempts for one test type.
type TestStats struct {
	TotalTests  int                 `json:"total_tests"`
	AvgScore    float64             `json:"avg_score"`
	Improvement float64             `json:"improvement"`
	RecentTests []model.TestAttempt `json:"recent_tests"`
}

type TestService interface {
	Create(userID uint, testType, section string) (*model.TestAttempt, error)
	// Complete recomputes the attempt's totals from its question attempts.
	// A full recomputation, so repeated calls with unchanged attempts give
	// the same result.
	Complete(userID, testAttemptID uint) (*model.TestAttempt, error)
	GetByID(userID, testAttemptID uint) (*model.TestAttempt, error)
	GetUserTests(userID uint, testType string, limit int) ([]model.TestAttempt, error)
	GetStats(userID uint, testType string) (*TestStats, error)
}

type testService struct {
	attemptRepo repository.TestAttemptRepository
	now         func() time.Time
}

func NewTestService(attemptRepo repository.TestAttemptRepository) TestService {
	return &testService{attemptRepo: attemptRepo, now: time.Now}
}

func (s *testService) Create(userID uint, testType, section string) (*model.TestAttempt, error) {
	if !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}
	attempt := &model.TestAttempt{
		UserID:    userID,
		TestType:  testType,
		Section:   section,
		StartedAt: s.now(),
	}
	if err := s.attemptRepo.CreateTestAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *testService) Complete(userID, testAttemptID uint) (*model.TestAttempt, error) {
	attempt, err := s.attemptRepo.GetTestAttempt(testAttemptID, userID)
	if err != nil {
		return nil, err
	}

	questionAttempts, err := s.attemptRepo.ListQuestionAttempts(testAttemptID)
	if err != nil {
		return nil, err
	}

	total := len(questionAttempts)
	correct := 0
	timeSpent := 0
	for _, qa := range questionAttempts {
		if qa.IsCorrect {
			correct++
		}
		timeSpent += qa.TimeSpent
	}

	score := 0.0
	if total > 0 {
		score = round1(float64(correct) / float64(total) * 100)
	}

	now := s.now()
	attempt.TotalQuestions = total
	attempt.CorrectAnswers = correct
	attempt.TimeSpent = timeSpent
	attempt.Score = &score
	attempt.CompletedAt = &now
	if err := s.attemptRepo.UpdateTestAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *testService) GetByID(userID, testAttemptID uint) (*model.TestAttempt, error) {
	return s.attemptRepo.GetTestAttempt(testAttemptID, userID)
}

func (s *testService) GetUserTests(userID uint, testType string, limit int) ([]model.TestAttempt, error) {
	if testType != "" && !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}
	if limit == 0 {
		limit = defaultTestLimit
	}
	if limit < 1 || limit > maxTestLimit {
		return nil, apperr.Validation("limit must be between 1 and %d", maxTestLimit)
	}
	attempts, err := s.attemptRepo.ListTestAttempts(userID, testType, limit)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.TestAttempt{}
	}
	return attempts, nil
}

func (s *testService) GetStats(userID uint, testType string) (*TestStats, error) {
	if !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}

	tests, err := s.attemptRepo.ListCompleted(userID, testType)
	if err != nil {
		return nil, err
	}

	stats := &TestStats{TotalTests: len(tests)}
	if len(tests) == 0 {
		stats.RecentTests = []model.TestAttempt{}
		return stats, nil
	}

	sum := 0.0
	for _, t := range tests {
		sum += scoreOf(t)
	}
	stats.AvgScore = round1(sum / float64(len(tests)))

	recent := tests
	if len(recent) > statsWindow {
		recent = recent[:statsWindow]
	}
	// Improvement compares the newest completed attempt against the oldest
	// of the most recent five.
	if len(recent) >= 2 {
		stats.Improvement = round1(scoreOf(recent[0]) - scoreOf(recent[len(recent)-1]))
	}
	stats.RecentTests = recent
	return stats, nil
}

func scoreOf(t model.TestAttempt) float64 {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
