package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
)

type HandlerManager struct {
	serviceManager services.ServiceManager

	authHandler         *AuthHandler
	userHandler         *UserHandler
	studentHandler      *StudentHandler
	importExportHandler *ImportExportHandler
	reportHandler       *ReportHandler
	authMiddleware      *AuthTokenMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:      serviceManager,
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		studentHandler:      NewStudentHandler(serviceManager.Student(), logger),
		importExportHandler: NewImportExportHandler(serviceManager.ImportExport(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:      NewAuthTokenMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			// Role assignment inside signup requires an admin caller
			auth.POST("/signup",
				hm.authMiddleware.AuthMiddleware(),
				hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin),
				hm.authHandler.Signup)
			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		// User management - Admins only
		users := api.Group("/users")
		users.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/paginated", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.POST("", hm.userHandler.CreateUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		// Student records - Admins only
		students := api.Group("/students")
		students.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/all", hm.studentHandler.ListAllStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.POST("", hm.studentHandler.CreateStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)

			// Import/export pipeline
			students.POST("/import/preview", hm.importExportHandler.PreviewImport)
			students.POST("/import", hm.importExportHandler.ImportStudents)
			students.GET("/export", hm.importExportHandler.ExportStudents)
		}

		// Chart aggregates - any authenticated user
		charts := api.Group("/charts")
		charts.Use(hm.authMiddleware.AuthMiddleware())
		{
			charts.GET("/chart-data", hm.reportHandler.DepartmentChart)
			charts.GET("/courseChart", hm.reportHandler.CourseChart)
			charts.GET("/ageChart", hm.reportHandler.AgeChart)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "student-admin-service",
	})
}
