package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/service"
)

type QuestionController struct {
	QuestionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GetByID handles GET /questions/:id
func (qc *QuestionController) GetByID(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	question, err := qc.QuestionService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// GetByFilters handles GET /questions
func (qc *QuestionController) GetByFilters(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	cursor, err := uintQuery(c, "cursor")
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := qc.QuestionService.GetByFilters(filtersFromQuery(c), limit, cursor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetRandom handles GET /questions/random
func (qc *QuestionController) GetRandom(c *gin.Context) {
	count, err := intQuery(c, "count")
	if err != nil {
		respondError(c, err)
		return
	}
	questions, err := qc.QuestionService.GetRandom(filtersFromQuery(c), count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type submitAnswerRequest struct {
	UserAnswer    string `json:"user_answer"`
	TimeSpent     int    `json:"time_spent"`
	TestAttemptID uint   `json:"test_attempt_id"`
}

// SubmitAnswer handles POST /questions/:id/answer
func (qc *QuestionController) SubmitAnswer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	questionID, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	result, err := qc.QuestionService.SubmitAnswer(userID, questionID, req.UserAnswer, req.TimeSpent, req.TestAttemptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type bookmarkRequest struct {
	Notes string `json:"notes"`
}

// Bookmark handles POST /questions/:id/bookmark
func (qc *QuestionController) Bookmark(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	questionID, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req bookmarkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("invalid request body"))
			return
		}
	}

	bookmark, err := qc.QuestionService.Bookmark(userID, questionID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark handles DELETE /questions/:id/bookmark
func (qc *QuestionController) RemoveBookmark(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	questionID, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := qc.QuestionService.RemoveBookmark(userID, questionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
}

// GetBookmarked handles GET /questions/bookmarks
func (qc *QuestionController) GetBookmarked(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	bookmarks, err := qc.QuestionService.GetBookmarked(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

func filtersFromQuery(c *gin.Context) service.QuestionFilters {
	filters := service.QuestionFilters{
		TestType:   c.Query("test_type"),
		Section:    c.Query("section"),
		Difficulty: c.Query("difficulty"),
	}
	if tags := c.Query("tags"); tags != "" {
		filters.Tags = strings.Split(tags, ",")
	}
	return filters
}
