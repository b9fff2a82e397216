package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Test types and difficulties accepted by the question bank.
const (
	TestTypeSAT   = "SAT"
	TestTypeIELTS = "IELTS"

	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"

	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// ValidTestType reports whether t is a known test type.
func ValidTestType(t string) bool {
	return t == TestTypeSAT || t == TestTypeIELTS
}

// ValidDifficulty reports whether d is a known difficulty.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// StringArray is a []string stored as a JSONB column.
type StringArray []string

// Scan implements sql.Scanner so GORM can read JSONB values.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("failed to unmarshal JSONB value")
}

// Value implements driver.Valuer so GORM can write JSONB values.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Password  string    `json:"password,omitempty" gorm:"not null"` // Excluded from responses by the service layer
	Image     string    `json:"image"`
	Role      string    `json:"role" gorm:"default:'STUDENT'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Question struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	TestType      string      `json:"test_type" gorm:"not null;index"`
	Section       string      `json:"section" gorm:"not null;index"`
	Difficulty    string      `json:"difficulty" gorm:"not null"`
	Passage       string      `json:"passage,omitempty"`
	Question      string      `json:"question" gorm:"not null"`
	Options       StringArray `json:"options" gorm:"type:jsonb;not null"`
	CorrectAnswer string      `json:"-" gorm:"not null"` // Hidden from clients until an answer is submitted
	Explanation   string      `json:"-"`
	Tags          StringArray `json:"tags" gorm:"type:jsonb"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type Bookmark struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_user_question"`
	Question   *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Progress is the per-user running accuracy counter for one
// (test type, section) pair. AverageScore is maintained by the
// upsert so ranking queries can order on it directly.
type Progress struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_type_section"`
	TestType           string    `json:"test_type" gorm:"not null;uniqueIndex:idx_user_type_section"`
	Section            string    `json:"section" gorm:"not null;uniqueIndex:idx_user_type_section"`
	QuestionsAttempted int       `json:"questions_attempted" gorm:"not null;default:0"`
	QuestionsCorrect   int       `json:"questions_correct" gorm:"not null;default:0"`
	AverageScore       float64   `json:"average_score" gorm:"not null;default:0"`
	LastPracticed      time.Time `json:"last_practiced"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type TestAttempt struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	UserID           uint              `json:"user_id" gorm:"not null;index"`
	TestType         string            `json:"test_type" gorm:"not null"`
	Section          string            `json:"section,omitempty"`
	StartedAt        time.Time         `json:"started_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	TotalQuestions   int               `json:"total_questions" gorm:"not null;default:0"`
	CorrectAnswers   int               `json:"correct_answers" gorm:"not null;default:0"`
	TimeSpent        int               `json:"time_spent" gorm:"not null;default:0"` // seconds
	Score            *float64          `json:"score,omitempty"`
	QuestionAttempts []QuestionAttempt `json:"question_attempts,omitempty" gorm:"foreignKey:TestAttemptID"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// QuestionAttempt is immutable once created.
type QuestionAttempt struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	TestAttemptID uint      `json:"test_attempt_id" gorm:"not null;index"`
	QuestionID    uint      `json:"question_id" gorm:"not null"`
	Question      *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserAnswer    string    `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
	TimeSpent     int       `json:"time_spent"` // seconds
	CreatedAt     time.Time `json:"created_at"`
}
