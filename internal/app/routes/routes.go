package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/altan/schoolhub/internal/app/controllers"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes. Auth endpoints other than
// register are public; everything else sits behind JWTAuth with role
// allow-lists on the mutating routes.
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/refresh", ctrl.AuthController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authAdmin := authenticated.Group("/auth")
		authAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			authAdmin.POST("/register", ctrl.AuthController.Register)
		}
		authenticated.POST("/auth/logout", ctrl.AuthController.Logout)

		// Students: reads are policy-checked per row, writes are staff only
		students := authenticated.Group("/students")
		{
			students.GET("", ctrl.StudentController.List)
			students.GET("/:id", ctrl.StudentController.GetByID)

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				studentsStaff.POST("", ctrl.StudentController.Create)
				studentsStaff.PUT("/:id", ctrl.StudentController.Update)
				studentsStaff.POST("/:id/transfer", ctrl.StudentController.Transfer)
				studentsStaff.DELETE("/:id", ctrl.StudentController.Delete)
			}
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", ctrl.ClassController.List)
			classes.GET("/:id", ctrl.ClassController.GetByID)

			classesAdmin := classes.Group("")
			classesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				classesAdmin.POST("", ctrl.ClassController.Create)
				classesAdmin.PUT("/:id", ctrl.ClassController.Update)
				classesAdmin.DELETE("/:id", ctrl.ClassController.Delete)
			}
		}

		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", ctrl.SubjectController.List)
			subjects.GET("/:id", ctrl.SubjectController.GetByID)

			subjectsAdmin := subjects.Group("")
			subjectsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				subjectsAdmin.POST("", ctrl.SubjectController.Create)
				subjectsAdmin.PUT("/:id", ctrl.SubjectController.Update)
				subjectsAdmin.DELETE("/:id", ctrl.SubjectController.Delete)
			}
		}

		schedules := authenticated.Group("/schedules")
		{
			schedules.GET("", ctrl.ScheduleController.List)
			schedules.GET("/:id", ctrl.ScheduleController.GetByID)

			schedulesAdmin := schedules.Group("")
			schedulesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				schedulesAdmin.POST("", ctrl.ScheduleController.Create)
				schedulesAdmin.PUT("/:id", ctrl.ScheduleController.Update)
				schedulesAdmin.DELETE("/:id", ctrl.ScheduleController.Delete)
			}
		}

		grades := authenticated.Group("/grades")
		{
			grades.GET("", ctrl.GradeController.List)
			grades.GET("/:id", ctrl.GradeController.GetByID)

			gradesStaff := grades.Group("")
			gradesStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				gradesStaff.POST("", ctrl.GradeController.Submit)
				gradesStaff.DELETE("/:id", ctrl.GradeController.Delete)
			}
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("/student/:studentId", ctrl.AttendanceController.ListByStudent)
			attendance.GET("/student/:studentId/summary", ctrl.AttendanceController.Summary)

			attendanceStaff := attendance.Group("")
			attendanceStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				attendanceStaff.POST("", ctrl.AttendanceController.Record)
				attendanceStaff.GET("/class/:classId", ctrl.AttendanceController.ListByClass)
			}
		}

		authenticated.POST("/ai/analyze", ctrl.AIController.Analyze)
	}
}
