package app

import (
	"calm_learning_hub/docs"
	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/middleware"
	"calm_learning_hub/internal/model"

	"calm_learning_hub/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	a.registerPublicRoutes(router, c, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerSharedRoutes(authGroup, c)
		a.registerLearnerRoutes(authGroup, c)
		a.registerGrownUpRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Home screens poll the phrase before and after login; a valid
		// token only refreshes the caller's last-seen time.
		public.GET("/encouragement",
			middleware.TryAuthMiddleware(a.Config),
			middleware.ActivityMiddleware(repos.user),
			c.encouragement.GetCurrent)
	}
}

// Routes every authenticated role can use.
func (a *App) registerSharedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)
	rg.GET("/help/ws", c.help.HandleWS)
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	learner := rg.Group("/")
	learner.Use(middleware.RoleMiddleware(model.Learner))
	{
		learner.GET("/my-lessons", c.learner.ListAssigned)
		learner.POST("/my-lessons/:id/step", c.learner.Step)
		learner.POST("/my-lessons/:id/complete", c.learner.Complete)
		learner.GET("/my-grown-ups", c.roster.ListGrownUps)
		learner.POST("/help-requests", c.help.Create)
	}
}

// Teachers and parents share the lesson authoring, roster and progress
// surface; linking rules differ per role inside the services.
func (a *App) registerGrownUpRoutes(rg *gin.RouterGroup, c *controllers) {
	grownUp := rg.Group("/")
	grownUp.Use(middleware.RoleMiddleware(model.Teacher, model.Parent))
	{
		grownUp.GET("/learners/search", c.roster.SearchLearners)
		grownUp.GET("/my-learners", c.roster.ListLearners)
		grownUp.POST("/my-learners", c.roster.AddLearner)

		grownUp.POST("/lessons/preview", c.lesson.Preview)
		grownUp.POST("/lessons", c.lesson.Create)
		grownUp.GET("/lessons", c.lesson.List)
		grownUp.POST("/lessons/:id/video", c.lesson.UploadVideo)

		grownUp.GET("/progress", c.progress.Overview)
		grownUp.GET("/progress/export", c.progress.Export)

		grownUp.GET("/help-requests", c.help.List)
		grownUp.POST("/help-requests/:id/resolve", c.help.Resolve)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/encouragements", c.encouragement.ListAll)
		admin.POST("/encouragements", c.encouragement.Create)
		admin.PUT("/encouragements/:id", c.encouragement.Update)
		admin.DELETE("/encouragements/:id", c.encouragement.Delete)
	}
}
