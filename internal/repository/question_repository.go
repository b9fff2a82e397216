package repository

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
)

// QuestionFilter narrows question queries. TestType is required; the
// remaining fields are applied only when set. Tags matches questions
// carrying at least one of the requested tags.
type QuestionFilter struct {
	TestType   string
	Section    string
	Difficulty string
	Tags       []string
}

type QuestionRepository interface {
	CreateQuestion(question *model.Question) error
	GetQuestionByID(id uint) (*model.Question, error)
	// ListQuestions returns up to limit rows matching the filter, newest
	// first (id descending, consistent with creation order). A non-zero
	// cursor restricts the page to rows with id <= cursor.
	ListQuestions(filter QuestionFilter, limit int, cursor uint) ([]model.Question, error)
	CountQuestions(filter QuestionFilter) (int64, error)
	// GetQuestionAtOffset returns the single matching row at the given
	// offset under the same stable ordering as ListQuestions.
	GetQuestionAtOffset(filter QuestionFilter, offset int) (*model.Question, error)
	CountAllQuestions() (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateQuestion(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) GetQuestionByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question %d not found", id)
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListQuestions(filter QuestionFilter, limit int, cursor uint) ([]model.Question, error) {
	q := r.applyFilter(filter)
	if cursor > 0 {
		q = q.Where("id <= ?", cursor)
	}
	var questions []model.Question
	err := q.Order("id DESC").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountQuestions(filter QuestionFilter) (int64, error) {
	var count int64
	err := r.applyFilter(filter).Count(&count).Error
	return count, err
}

func (r *questionRepository) GetQuestionAtOffset(filter QuestionFilter, offset int) (*model.Question, error) {
	var question model.Question
	err := r.applyFilter(filter).Order("id DESC").Offset(offset).Limit(1).Take(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no question at offset %d", offset)
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) CountAllQuestions() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}

func (r *questionRepository) applyFilter(filter QuestionFilter) *gorm.DB {
	q := r.db.Model(&model.Question{}).Where("test_type = ?", filter.TestType)
	if filter.Section != "" {
		q = q.Where("section = ?", filter.Section)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if len(filter.Tags) > 0 {
		// JSONB containment per tag, OR-chained: at least one must match.
		or := r.db.Where("tags @> ?", tagJSON(filter.Tags[0]))
		for _, tag := range filter.Tags[1:] {
			or = or.Or("tags @> ?", tagJSON(tag))
		}
		q = q.Where(or)
	}
	return q
}

func tagJSON(tag string) string {
	b, _ := json.Marshal([]string{tag})
	return string(b)
}
