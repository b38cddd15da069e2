package app

import (
	"smartexam_backend/docs"
	"smartexam_backend/internal/config"
	"smartexam_backend/internal/middleware"
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. public: health, catalog, logins
	a.registerPublicRoutes(router, c)

	// 2. everything else needs a token
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}

	if cfg.Export.Type == util.StorageLocal {
		router.Static("/exports", cfg.Export.LocalPath)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/batches", c.catalog.ListBatches)
		public.GET("/batches/:batch/subjects", c.catalog.ListSubjects)

		auth := public.Group("/auth")
		{
			auth.POST("/student", c.auth.StudentLogin)
			auth.POST("/teacher", c.auth.TeacherLogin)
			auth.POST("/admin", c.auth.AdminLogin)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	exams := rg.Group("/student/exams/:batch/:subject")
	exams.Use(middleware.RoleMiddleware(model.Student))
	{
		exams.GET("", c.exam.Enter)
		exams.POST("/start", c.exam.Start)
		exams.PUT("/answers", c.exam.Answer)
		exams.POST("/submit", c.exam.Submit)
		exams.GET("/result", c.exam.Result)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/batches", c.teacher.CreateBatch)
		teacher.POST("/batches/:batch/subjects", c.teacher.CreateSubject)

		subject := teacher.Group("/batches/:batch/subjects/:subject")
		{
			subject.GET("/questions", c.teacher.ListQuestions)
			subject.POST("/questions", c.teacher.AddQuestion)
			subject.PUT("/questions/:id", c.teacher.UpdateQuestion)
			subject.DELETE("/questions/:id", c.teacher.DeleteQuestion)

			subject.GET("/results", c.teacher.ListResults)
			subject.DELETE("/results", c.teacher.ResetResults)
			subject.POST("/results/export", c.teacher.ExportResults)
		}
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/teachers", c.admin.ListTeachers)
		admin.POST("/teachers", c.admin.CreateTeacher)
		admin.PUT("/teachers/:name/password", c.admin.ResetTeacherPassword)
		admin.DELETE("/teachers/:name", c.admin.DeleteTeacher)

		admin.GET("/batches", c.admin.Overview)
		admin.DELETE("/batches/:batch", c.admin.DeleteBatch)
		admin.DELETE("/batches/:batch/subjects/:subject", c.admin.DeleteSubject)
	}
}
