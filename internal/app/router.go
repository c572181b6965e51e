package app

import (
	"training_platform_backend/internal/config"
	"training_platform_backend/internal/middleware"
	"training_platform_backend/internal/model"
	"training_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerTrainerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerLearnerRoutes(g *gin.RouterGroup, c *controllers) {
	g.PUT("/password", c.auth.ChangePassword)
	g.GET("/profile", c.user.GetProfile)
	g.PUT("/profile", c.user.UpdateProfile)

	g.GET("/modules", c.module.ListModules)
	g.GET("/modules/:id", c.module.GetModule)

	g.POST("/contents/:id/open", c.content.OpenContent)
	g.POST("/contents/:id/complete", c.content.CompleteContent)

	g.POST("/contents/:id/quiz/session", c.quiz.OpenSession)
	g.GET("/quiz-sessions/:sessionId", c.quiz.GetSession)
	g.PUT("/quiz-sessions/:sessionId/answer", c.quiz.SetAnswer)
	g.POST("/quiz-sessions/:sessionId/navigate", c.quiz.Navigate)
	g.POST("/quiz-sessions/:sessionId/submit", c.quiz.Submit)
	g.POST("/quiz-sessions/:sessionId/retry", c.quiz.Retry)
	g.DELETE("/quiz-sessions/:sessionId", c.quiz.CloseSession)

	g.GET("/assignments", c.assignment.ListMine)
	g.GET("/leaderboard", c.dashboard.Leaderboard)
}

func (a *App) registerTrainerRoutes(g *gin.RouterGroup, c *controllers) {
	trainer := g.Group("/trainer")
	trainer.Use(middleware.RoleMiddleware(model.Trainer))
	{
		trainer.POST("/modules", c.module.CreateModule)
		trainer.PUT("/modules/:id/prerequisite", c.module.UpdatePrerequisite)
		trainer.POST("/modules/:id/contents", c.content.CreateContent)
		trainer.POST("/contents/:id/quiz", c.content.CreateQuiz)
		trainer.POST("/contents/:id/file", c.content.UploadFile)
		trainer.POST("/contents/:id/youtube", c.content.RegisterYouTube)

		trainer.GET("/assignments", c.assignment.ListAll)
		trainer.POST("/assignments", c.assignment.Create)
		trainer.DELETE("/assignments/:id", c.assignment.Delete)
	}
}

func (a *App) registerAdminRoutes(g *gin.RouterGroup, c *controllers) {
	admin := g.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
	}
}
