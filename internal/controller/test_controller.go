package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/service"
)

type TestController struct {
	TestService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{TestService: testService}
}

type createTestRequest struct {
	TestType string `json:"test_type" binding:"required"`
	Section  string `json:"section"`
}

// Create handles POST /tests
func (tc *TestController) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	attempt, err := tc.TestService.Create(userID, req.TestType, req.Section)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// Complete handles POST /tests/:id/complete
func (tc *TestController) Complete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	attempt, err := tc.TestService.Complete(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// GetByID handles GET /tests/:id
func (tc *TestController) GetByID(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, err := uintParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	attempt, err := tc.TestService.GetByID(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// GetUserTests handles GET /tests
func (tc *TestController) GetUserTests(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}

	attempts, err := tc.TestService.GetUserTests(userID, c.Query("test_type"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": attempts})
}

// GetStats handles GET /tests/stats
func (tc *TestController) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	stats, err := tc.TestService.GetStats(userID, c.Query("test_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
