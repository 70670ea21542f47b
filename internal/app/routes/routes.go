package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/glon/summercourse/internal/app/controllers"
	"github.com/glon/summercourse/internal/app/models"
	"github.com/glon/summercourse/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	preselectionController *controllers.PreselectionController,
	courseController *controllers.CourseController,
	voteController *controllers.VoteController,
	reportController *controllers.ReportController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// Student self-registration
	v1.POST("/students", authController.Register)

	// Public course demand figures for the landing page
	v1.GET("/courses/stats", courseController.PublicStats)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Dashboard figures for any signed-in user
		authenticated.GET("/stats", reportController.DashboardStats)

		// Student-facing routes
		students := authenticated.Group("")
		students.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			students.GET("/preselection", preselectionController.GetStatus)
			students.POST("/preselection", preselectionController.Create)
			students.PUT("/preselection", preselectionController.Update)

			students.GET("/votes", voteController.GetCategories)
			students.POST("/votes", voteController.Cast)
			students.PUT("/votes", voteController.Change)

			students.GET("/students/profile", profileController.GetOwnProfile)
			students.PUT("/students/profile", profileController.UpdateOwnProfile)
		}

		// Administration routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/courses", courseController.List)
			admin.POST("/courses", courseController.Create)
			admin.PUT("/courses/:id", courseController.Update)
			admin.DELETE("/courses/:id", courseController.Delete)

			admin.GET("/preselections", preselectionController.ListAll)
			admin.DELETE("/preselections/:id", preselectionController.Delete)

			admin.GET("/votes", voteController.Statistics)
			admin.DELETE("/votes", voteController.Reset)

			admin.GET("/reports", reportController.Generate)

			admin.GET("/profiles", profileController.ListProfiles)
			admin.POST("/profiles", profileController.CreateUser)
		}
	}
}
