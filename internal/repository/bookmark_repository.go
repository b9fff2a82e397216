package repository

import (
	"errors"

	"gorm.io/gorm"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
)

type BookmarkRepository interface {
	CreateBookmark(bookmark *model.Bookmark) error
	DeleteBookmark(userID, questionID uint) error
	ListBookmarks(userID uint) ([]model.Bookmark, error)
	CountBookmarks(userID uint) (int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) CreateBookmark(bookmark *model.Bookmark) error {
	if err := r.db.Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("question %d is already bookmarked", bookmark.QuestionID)
		}
		return err
	}
	return nil
}

func (r *bookmarkRepository) DeleteBookmark(userID, questionID uint) error {
	res := r.db.Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("bookmark for question %d not found", questionID)
	}
	return nil
}

func (r *bookmarkRepository) ListBookmarks(userID uint) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.db.Preload("Question").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *bookmarkRepository) CountBookmarks(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
