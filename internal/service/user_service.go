package service

import (
	"math"
	"net/url"
	"time"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
)

const streakWindowDays = 7

// DashboardStats pools a user's activity across all test types.
type DashboardStats struct {
	TotalQuestionsAttempted int   `json:"total_questions_attempted"`
	TotalQuestionsCorrect   int   `json:"total_questions_correct"`
	Accuracy                int   `json:"accuracy"` // whole percent
	CompletedTests          int64 `json:"completed_tests"`
	StudyStreak             int   `json:"study_streak"`
	BookmarksCount          int64 `json:"bookmarks_count"`
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name  *string
	Image *string
}

type UserService interface {
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error)
	GetDashboardStats(userID uint) (*DashboardStats, error)
}

type userService struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	attemptRepo  repository.TestAttemptRepository
	bookmarkRepo repository.BookmarkRepository
	now          func() time.Time
}

func NewUserService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	attemptRepo repository.TestAttemptRepository,
	bookmarkRepo repository.BookmarkRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		attemptRepo:  attemptRepo,
		bookmarkRepo: bookmarkRepo,
		now:          time.Now,
	}
}

func (s *userService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *userService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, apperr.Validation("name cannot be empty")
	}
	if update.Image != nil {
		u, err := url.Parse(*update.Image)
		if err != nil || !u.IsAbs() {
			return nil, apperr.Validation("image must be an absolute URL")
		}
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Image != nil {
		user.Image = *update.Image
	}
	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// GetDashboardStats fails whole when any sub-query fails; a partial zero
// would misreport the dashboard.
func (s *userService) GetDashboardStats(userID uint) (*DashboardStats, error) {
	progress, err := s.progressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	for _, p := range progress {
		stats.TotalQuestionsAttempted += p.QuestionsAttempted
		stats.TotalQuestionsCorrect += p.QuestionsCorrect
	}
	if stats.TotalQuestionsAttempted > 0 {
		stats.Accuracy = int(math.Round(float64(stats.TotalQuestionsCorrect) / float64(stats.TotalQuestionsAttempted) * 100))
	}

	completed, err := s.attemptRepo.CountCompleted(userID)
	if err != nil {
		return nil, err
	}
	stats.CompletedTests = completed

	since := s.now().AddDate(0, 0, -streakWindowDays)
	recent, err := s.progressRepo.ListPracticedSince(userID, since)
	if err != nil {
		return nil, err
	}
	days := make(map[string]struct{})
	for _, p := range recent {
		days[p.LastPracticed.UTC().Format("2006-01-02")] = struct{}{}
	}
	stats.StudyStreak = len(days)

	bookmarks, err := s.bookmarkRepo.CountBookmarks(userID)
	if err != nil {
		return nil, err
	}
	stats.BookmarksCount = bookmarks

	return stats, nil
}
