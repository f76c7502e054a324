package app

import (
	"quizdom_backend/docs"
	"quizdom_backend/internal/config"
	"quizdom_backend/internal/middleware"
	"quizdom_backend/internal/model"
	"quizdom_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	a.registerPublicRoutes(router, c)

	// 用户侧授权路由，仅普通用户可作答与查询成绩，管理员不参与作答
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleUser))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 管理端路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	// 测验作答
	rg.GET("/quizzes", c.quiz.ListQuizzes)
	rg.GET("/quizzes/:quizId/start", c.attempt.StartQuiz)
	rg.POST("/quizzes/:quizId/submit", c.attempt.SubmitQuiz)

	// 成绩与统计
	rg.GET("/scorecard", c.score.Scorecard)
	rg.GET("/stats/me", c.stats.MyStats)
	rg.POST("/export/scores", c.export.ExportScores)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/subjects", c.subject.CreateSubject)
		admin.GET("/subjects", c.subject.ListSubjects)
		admin.PUT("/subjects/:id", c.subject.UpdateSubject)
		admin.DELETE("/subjects/:id", c.subject.DeleteSubject)

		admin.POST("/chapters", c.chapter.CreateChapter)
		admin.GET("/chapters", c.chapter.ListChapters)
		admin.PUT("/chapters/:id", c.chapter.UpdateChapter)
		admin.DELETE("/chapters/:id", c.chapter.DeleteChapter)

		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes", c.quiz.AdminListQuizzes)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		admin.POST("/quizzes/:id/questions", c.question.CreateQuestion)
		admin.GET("/quizzes/:id/questions", c.question.ListQuestions)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		admin.GET("/stats", c.stats.AdminStats)
		admin.GET("/users", c.user.GetUsers)
	}
}
