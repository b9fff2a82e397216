package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
)

type ProgressRepository interface {
	// RecordAttempt upserts the (user, testType, section) progress row in a
	// single statement. Increments run SQL-side so concurrent submissions
	// for the same row cannot lose an update.
	RecordAttempt(userID uint, testType, section string, correct bool, practicedAt time.Time) error
	GetBySection(userID uint, testType, section string) (*model.Progress, error)
	ListByUserAndType(userID uint, testType string) ([]model.Progress, error)
	ListByUser(userID uint) ([]model.Progress, error)
	// ListByScore returns up to limit rows ordered by average score.
	// Storage order (id) breaks ties.
	ListByScore(userID uint, testType string, ascending bool, limit int) ([]model.Progress, error)
	ListPracticedSince(userID uint, since time.Time) ([]model.Progress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) RecordAttempt(userID uint, testType, section string, correct bool, practicedAt time.Time) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}

	row := model.Progress{
		UserID:             userID,
		TestType:           testType,
		Section:            section,
		QuestionsAttempted: 1,
		QuestionsCorrect:   correctInc,
		AverageScore:       float64(correctInc) * 100,
		LastPracticed:      practicedAt,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "test_type"}, {Name: "section"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_attempted": gorm.Expr("progresses.questions_attempted + 1"),
			"questions_correct":   gorm.Expr("progresses.questions_correct + ?", correctInc),
			"average_score": gorm.Expr(
				"(progresses.questions_correct + ?) * 100.0 / (progresses.questions_attempted + 1)", correctInc),
			"last_practiced": practicedAt,
			"updated_at":     practicedAt,
		}),
	}).Create(&row).Error
}

func (r *progressRepository) GetBySection(userID uint, testType, section string) (*model.Progress, error) {
	var progress model.Progress
	err := r.db.Where("user_id = ? AND test_type = ? AND section = ?", userID, testType, section).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no progress for %s/%s", testType, section)
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) ListByUserAndType(userID uint, testType string) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.db.Where("user_id = ? AND test_type = ?", userID, testType).Order("id").Find(&rows).Error
	return rows, err
}

func (r *progressRepository) ListByUser(userID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *progressRepository) ListByScore(userID uint, testType string, ascending bool, limit int) ([]model.Progress, error) {
	order := "average_score DESC, id"
	if ascending {
		order = "average_score ASC, id"
	}
	var rows []model.Progress
	err := r.db.Where("user_id = ? AND test_type = ?", userID, testType).
		Order(order).Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *progressRepository) ListPracticedSince(userID uint, since time.Time) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.db.Where("user_id = ? AND last_practiced >= ?", userID, since).Find(&rows).Error
	return rows, err
}
