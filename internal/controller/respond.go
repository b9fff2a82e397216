package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"testprep-backend/internal/apperr"
	"testprep-backend/pkg/logging"
	"testprep-backend/utilities"
)

// respondError maps an application error onto an HTTP status. Internal
// failures are logged and masked.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser pulls the authenticated user id out of the context.
func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		respondError(c, apperr.Unauthorized("authentication required"))
		return 0, false
	}
	return userID, true
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(v), nil
}

// uintQuery parses an optional numeric query parameter; missing means zero.
func uintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(v), nil
}

// intQuery parses an optional numeric query parameter. Missing means zero
// (the service applies its default); an explicit value must be positive,
// since every accepted range starts at 1.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return v, nil
}
