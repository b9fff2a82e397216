package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
)

type TestAttemptRepository interface {
	CreateTestAttempt(attempt *model.TestAttempt) error
	// GetTestAttempt loads an attempt scoped to its owner, with its
	// question attempts and their questions hydrated.
	GetTestAttempt(id, userID uint) (*model.TestAttempt, error)
	UpdateTestAttempt(attempt *model.TestAttempt) error
	ListTestAttempts(userID uint, testType string, limit int) ([]model.TestAttempt, error)
	// ListCompleted returns completed attempts, most recently completed first.
	ListCompleted(userID uint, testType string) ([]model.TestAttempt, error)
	CountCompleted(userID uint) (int64, error)

	CreateQuestionAttempt(attempt *model.QuestionAttempt) error
	ListQuestionAttempts(testAttemptID uint) ([]model.QuestionAttempt, error)
	// ListQuestionAttemptsSince returns the user's question attempts created
	// within the window, reached through their owning test attempts.
	ListQuestionAttemptsSince(userID uint, since time.Time) ([]model.QuestionAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) CreateTestAttempt(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) GetTestAttempt(id, userID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.Preload("QuestionAttempts.Question").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test attempt %d not found", id)
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) UpdateTestAttempt(attempt *model.TestAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *testAttemptRepository) ListTestAttempts(userID uint, testType string, limit int) ([]model.TestAttempt, error) {
	q := r.db.Where("user_id = ?", userID)
	if testType != "" {
		q = q.Where("test_type = ?", testType)
	}
	var attempts []model.TestAttempt
	err := q.Order("started_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) ListCompleted(userID uint, testType string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.Where("user_id = ? AND test_type = ? AND completed_at IS NOT NULL", userID, testType).
		Order("completed_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *testAttemptRepository) CreateQuestionAttempt(attempt *model.QuestionAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) ListQuestionAttempts(testAttemptID uint) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.db.Where("test_attempt_id = ?", testAttemptID).Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) ListQuestionAttemptsSince(userID uint, since time.Time) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.db.
		Joins("JOIN test_attempts ON test_attempts.id = question_attempts.test_attempt_id").
		Where("test_attempts.user_id = ? AND question_attempts.created_at >= ?", userID, since).
		Order("question_attempts.created_at").
		Find(&attempts).Error
	return attempts, err
}
