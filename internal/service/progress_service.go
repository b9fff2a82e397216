package service

import (
	"sort"
	"time"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
)

const (
	defaultActivityDays = 30
	maxActivityDays     = 90
	areaCount           = 3
)

// ProgressOverview aggregates a user's progress rows for one test type.
type ProgressOverview struct {
	Sections        []model.Progress `json:"sections"`
	TotalAttempted  int              `json:"total_attempted"`
	TotalCorrect    int              `json:"total_correct"`
	OverallAccuracy float64          `json:"overall_accuracy"`
}

// DailyActivity is one calendar day of practice (UTC dates).
type DailyActivity struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

type ProgressService interface {
	GetOverview(userID uint, testType string) (*ProgressOverview, error)
	GetBySection(userID uint, testType, section string) (*model.Progress, error)
	GetWeakAreas(userID uint, testType string) ([]model.Progress, error)
	GetStrengths(userID uint, testType string) ([]model.Progress, error)
	GetRecentActivity(userID uint, days int) ([]DailyActivity, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	attemptRepo  repository.TestAttemptRepository
	now          func() time.Time
}

func NewProgressService(progressRepo repository.ProgressRepository, attemptRepo repository.TestAttemptRepository) ProgressService {
	return &progressService{progressRepo: progressRepo, attemptRepo: attemptRepo, now: time.Now}
}

func (s *progressService) GetOverview(userID uint, testType string) (*ProgressOverview, error) {
	if !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}

	rows, err := s.progressRepo.ListByUserAndType(userID, testType)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Progress{}
	}

	overview := &ProgressOverview{Sections: rows}
	for _, p := range rows {
		overview.TotalAttempted += p.QuestionsAttempted
		overview.TotalCorrect += p.QuestionsCorrect
	}
	if overview.TotalAttempted > 0 {
		overview.OverallAccuracy = round1(float64(overview.TotalCorrect) / float64(overview.TotalAttempted) * 100)
	}
	return overview, nil
}

func (s *progressService) GetBySection(userID uint, testType, section string) (*model.Progress, error) {
	if !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}
	if section == "" {
		return nil, apperr.Validation("section is required")
	}
	return s.progressRepo.GetBySection(userID, testType, section)
}

func (s *progressService) GetWeakAreas(userID uint, testType string) ([]model.Progress, error) {
	return s.listRanked(userID, testType, true)
}

func (s *progressService) GetStrengths(userID uint, testType string) ([]model.Progress, error) {
	return s.listRanked(userID, testType, false)
}

func (s *progressService) listRanked(userID uint, testType string, ascending bool) ([]model.Progress, error) {
	if !model.ValidTestType(testType) {
		return nil, apperr.Validation("unknown test type %q", testType)
	}
	rows, err := s.progressRepo.ListByScore(userID, testType, ascending, areaCount)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Progress{}
	}
	return rows, nil
}

func (s *progressService) GetRecentActivity(userID uint, days int) ([]DailyActivity, error) {
	if days == 0 {
		days = defaultActivityDays
	}
	if days < 1 || days > maxActivityDays {
		return nil, apperr.Validation("days must be between 1 and %d", maxActivityDays)
	}

	since := s.now().AddDate(0, 0, -days)
	attempts, err := s.attemptRepo.ListQuestionAttemptsSince(userID, since)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DailyActivity)
	for _, a := range attempts {
		date := a.CreatedAt.UTC().Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &DailyActivity{Date: date}
			byDate[date] = day
		}
		day.Total++
		if a.IsCorrect {
			day.Correct++
		}
	}

	activity := make([]DailyActivity, 0, len(byDate))
	for _, day := range byDate {
		activity = append(activity, *day)
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].Date < activity[j].Date })
	return activity, nil
}
