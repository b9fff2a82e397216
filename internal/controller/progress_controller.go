package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"testprep-backend/internal/service"
)

type ProgressController struct {
	ProgressService service.ProgressService
	ReportService   service.ReportService
}

func NewProgressController(progressService service.ProgressService, reportService service.ReportService) *ProgressController {
	return &ProgressController{ProgressService: progressService, ReportService: reportService}
}

// GetOverview handles GET /progress/overview
func (pc *ProgressController) GetOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	overview, err := pc.ProgressService.GetOverview(userID, c.Query("test_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetBySection handles GET /progress/sections/:section
func (pc *ProgressController) GetBySection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	progress, err := pc.ProgressService.GetBySection(userID, c.Query("test_type"), c.Param("section"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetWeakAreas handles GET /progress/weak-areas
func (pc *ProgressController) GetWeakAreas(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	areas, err := pc.ProgressService.GetWeakAreas(userID, c.Query("test_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// GetStrengths handles GET /progress/strengths
func (pc *ProgressController) GetStrengths(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	areas, err := pc.ProgressService.GetStrengths(userID, c.Query("test_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// GetRecentActivity handles GET /progress/activity
func (pc *ProgressController) GetRecentActivity(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	days, err := intQuery(c, "days")
	if err != nil {
		respondError(c, err)
		return
	}

	activity, err := pc.ProgressService.GetRecentActivity(userID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// DownloadReport handles GET /progress/report
func (pc *ProgressController) DownloadReport(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	testType := c.Query("test_type")
	pdfContent, err := pc.ReportService.ProgressReport(userID, testType)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_progress_report.pdf", testType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfContent)
}
