package app

import (
	"studyshare_backend/docs"
	"studyshare_backend/internal/config"
	"studyshare_backend/internal/middleware"
	"studyshare_backend/internal/model"
	"studyshare_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		// 课程目录
		authGroup.GET("/lectures", c.lecture.ListLectures)
		authGroup.POST("/lectures", middleware.RoleMiddleware(model.Admin), c.lecture.CreateLecture)

		// 内容
		authGroup.POST("/contents", c.content.CreateContent)
		authGroup.GET("/contents", c.content.SearchContents)
		authGroup.GET("/contents/mine", c.content.MyContents)
		authGroup.GET("/contents/:id", c.content.GetContent)
		authGroup.PUT("/contents/:id", c.content.UpdateContent)
		authGroup.DELETE("/contents/:id", c.content.DeleteContent)

		// 题集版本
		authGroup.GET("/contents/:id/versions", c.problemSet.ListVersions)
		authGroup.GET("/contents/:id/versions/:versionId/questions", c.problemSet.VersionQuestions)

		// 考试
		authGroup.POST("/contents/:id/exam/start", c.exam.StartExam)
		authGroup.POST("/contents/:id/exam/submit", c.exam.SubmitExam)
		authGroup.GET("/contents/:id/exam/history", c.exam.ExamHistory)
		authGroup.GET("/exam/attempts/:attemptId", c.exam.AttemptScore)

		// 评分
		authGroup.PUT("/contents/:id/rating", c.rating.RateContent)
		authGroup.GET("/contents/:id/rating", c.rating.RatingSummary)

		// 附件
		authGroup.POST("/attachments", c.upload.UploadAttachment)
	}
}
