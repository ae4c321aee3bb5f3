package routes

import (
	"teamup-backend/internal/api/handlers"
	"teamup-backend/internal/api/middleware"
	"teamup-backend/internal/auth"
	"teamup-backend/internal/config"
	"teamup-backend/internal/logger"
	"teamup-backend/internal/repository"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto a gin engine.
func SetupRoutes(db *gorm.DB, cfg *config.Config, authService *auth.AuthService) *gin.Engine {
	router := gin.New()
	log := logger.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	postRepo := repository.NewPostRepository(db)

	userService := service.NewUserService(userRepo, profileRepo, validate)
	profileService := service.NewProfileService(profileRepo, validate)
	teamService := service.NewTeamService(teamRepo, userRepo, profileRepo, postRepo, validate)
	postService := service.NewPostService(postRepo, teamRepo, userRepo, validate)
	reconcileService := service.NewReconcileService(teamRepo, profileRepo)

	userHandler := handlers.NewUserHandler(userService, authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	teamHandler := handlers.NewTeamHandler(teamService)
	postHandler := handlers.NewPostHandler(postService)
	reconcileHandler := handlers.NewReconcileHandler(reconcileService)
	healthHandler := handlers.NewHealthHandler(db)

	authMiddleware := auth.NewAuthMiddleware(authService)

	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Registration and login are the only unauthenticated API routes.
	v1.POST("/users", userHandler.Register)
	v1.POST("/auth/login", userHandler.Login)

	// Team and member reads can optionally be served without a token.
	readAuth := authMiddleware.RequireAuth()
	if cfg.PublicTeamReads {
		readAuth = authMiddleware.OptionalAuth()
	}
	reads := v1.Group("")
	reads.Use(readAuth)
	{
		reads.GET("/teams", teamHandler.List)
		reads.GET("/teams/:id", teamHandler.GetByID)
		reads.GET("/teams/:id/members", teamHandler.ListMembers)
		reads.GET("/teams/:id/members/:userId", teamHandler.GetMember)
		reads.GET("/teams/:id/posts", postHandler.ListByTeam)
	}

	protected := v1.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", userHandler.Me)

		protected.GET("/profiles/me", profileHandler.GetOwn)
		protected.GET("/profiles/:userId", profileHandler.GetByUserID)
		protected.PUT("/profiles/me", profileHandler.UpdateOwn)

		protected.POST("/teams", teamHandler.Create)
		protected.DELETE("/teams/:id", teamHandler.Delete)
		protected.POST("/teams/:id/members/:userId", teamHandler.AddMember)
		protected.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
		protected.POST("/teams/:id/admins/:userId", teamHandler.AddAdmin)
		protected.DELETE("/teams/:id/admins/:userId", teamHandler.RemoveAdmin)

		protected.POST("/posts", postHandler.Create)
		protected.GET("/posts/:id", postHandler.GetByID)
		protected.POST("/teams/:id/posts/:postId", postHandler.Attach)
		protected.DELETE("/teams/:id/posts/:postId", postHandler.Detach)
		protected.POST("/posts/:id/likes", postHandler.Like)
		protected.DELETE("/posts/:id/likes", postHandler.Unlike)
		protected.POST("/posts/:id/comments", postHandler.AddComment)

		protected.POST("/admin/reconcile", reconcileHandler.Run)
	}

	return router
}
