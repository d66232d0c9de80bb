package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/student-portal/internal/app/controllers"
	"github.com/campusgate/student-portal/internal/middleware"
)

// SetupRouter configures all portal routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	dashboardController *controllers.DashboardController,
	hostelController *controllers.HostelController,
	courseFeesController *controllers.CourseFeesController,
	academicsController *controllers.AcademicsController,
	examController *controllers.ExamController,
	busPassController *controllers.BusPassController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true})
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// --- Public routes ---
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/signup", authController.ShowSignUp)
	router.POST("/signup", authController.SignUp)

	// --- Authenticated routes ---
	authed := router.Group("")
	authed.Use(sessionMiddleware.RequireAuth())
	{
		authed.POST("/logout", authController.Logout)

		authed.GET("/dashboard", dashboardController.Show)

		profile := authed.Group("/profile")
		{
			profile.GET("", profileController.Show)
			profile.POST("/details", profileController.UpdateDetails)
			profile.POST("/changes/add", profileController.AddChange)
			profile.POST("/changes/remove", profileController.RemoveChange)
			profile.POST("/changes/update", profileController.UpdateChange)
			profile.POST("/changes/submit", profileController.SubmitChanges)
		}

		hostel := authed.Group("/hostel")
		{
			hostel.GET("", hostelController.Show)
			hostel.POST("/pay", hostelController.Pay)
			hostel.POST("/pay/callback", hostelController.PayCallback)
			hostel.GET("/receipt/:paymentId", hostelController.Receipt)
		}

		fees := authed.Group("/fees")
		{
			fees.GET("", courseFeesController.Show)
			fees.POST("/pay", courseFeesController.Pay)
			fees.POST("/pay/callback", courseFeesController.PayCallback)
			fees.GET("/receipt/:paymentId", courseFeesController.Receipt)
		}

		authed.GET("/attendance", academicsController.Attendance)
		authed.GET("/marks", academicsController.Marks)
		authed.GET("/timetable", academicsController.Timetable)

		exams := authed.Group("/exams")
		{
			exams.GET("", examController.Show)
			exams.POST("/submit", examController.Submit)
		}

		buspass := authed.Group("/buspass")
		{
			buspass.GET("", busPassController.Show)
			buspass.POST("/apply", busPassController.Apply)
		}
	}
}
