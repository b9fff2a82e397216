package controller

import (
	"github.com/gin-gonic/gin"

	"testprep-backend/internal/service"
	"testprep-backend/utilities"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	authService service.AuthService,
	questionService service.QuestionService,
	testService service.TestService,
	progressService service.ProgressService,
	reportService service.ReportService,
	userService service.UserService,
) {
	authCtrl := NewAuthController(authService)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh", authCtrl.Refresh)
	}

	questionCtrl := NewQuestionController(questionService)
	questions := r.Group("/questions")
	{
		questions.GET("", questionCtrl.GetByFilters)
		questions.GET("/random", questionCtrl.GetRandom)
		questions.GET("/:id", questionCtrl.GetByID)

		protected := questions.Group("", utilities.AuthMiddleware())
		{
			protected.GET("/bookmarks", questionCtrl.GetBookmarked)
			protected.POST("/:id/answer", questionCtrl.SubmitAnswer)
			protected.POST("/:id/bookmark", questionCtrl.Bookmark)
			protected.DELETE("/:id/bookmark", questionCtrl.RemoveBookmark)
		}
	}

	testCtrl := NewTestController(testService)
	tests := r.Group("/tests", utilities.AuthMiddleware())
	{
		tests.POST("", testCtrl.Create)
		tests.GET("", testCtrl.GetUserTests)
		tests.GET("/stats", testCtrl.GetStats)
		tests.GET("/:id", testCtrl.GetByID)
		tests.POST("/:id/complete", testCtrl.Complete)
	}

	progressCtrl := NewProgressController(progressService, reportService)
	progress := r.Group("/progress", utilities.AuthMiddleware())
	{
		progress.GET("/overview", progressCtrl.GetOverview)
		progress.GET("/sections/:section", progressCtrl.GetBySection)
		progress.GET("/weak-areas", progressCtrl.GetWeakAreas)
		progress.GET("/strengths", progressCtrl.GetStrengths)
		progress.GET("/activity", progressCtrl.GetRecentActivity)
		progress.GET("/report", progressCtrl.DownloadReport)
	}

	userCtrl := NewUserController(userService)
	user := r.Group("/user", utilities.AuthMiddleware())
	{
		user.GET("/profile", userCtrl.GetProfile)
		user.PUT("/profile", userCtrl.UpdateProfile)
		user.GET("/dashboard", userCtrl.GetDashboardStats)
	}
}
