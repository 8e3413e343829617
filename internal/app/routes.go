package app

import (
	"log/slog"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/cache"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/config"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/handlers"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/mail"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/realtime"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine and returns the realtime hub.
func Setup(r *gin.Engine, cfg config.Config, log *slog.Logger, db *pgxpool.Pool, rdb *redis.Client) (*realtime.Hub, error) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL.Duration())
	mailer, err := mail.New(cfg.SMTP, cfg.App.FrontendURL, log)
	if err != nil {
		return nil, err
	}

	userRepo := repo.NewPGUserRepo(db)
	projectRepo := repo.NewPGProjectRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	projectCache := cache.NewProjectCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userSvc := service.NewUserService(userRepo, tokens, mailer, log)
	projectSvc := service.NewProjectService(projectRepo, userRepo, taskRepo, projectCache, log)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, log)

	userHandler := handlers.NewUserHandler(userSvc)
	projectHandler := handlers.NewProjectHandler(projectSvc)
	taskHandler := handlers.NewTaskHandler(taskSvc)

	requireAuth := auth.RequireAuth(tokens, userRepo)
	registerUserRoutes(api, userHandler, requireAuth)

	protected := api.Group("", requireAuth)
	registerProjectRoutes(protected, projectHandler)
	registerTaskRoutes(protected, taskHandler)

	hub := realtime.NewHub(projectSvc.CanView, log)
	r.GET("/ws", realtime.Handler(hub, tokens, userRepo, cfg.App.FrontendURL))

	return hub, nil
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "UpTask API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
			"ws":      "/ws",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"msg": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler, requireAuth gin.HandlerFunc) {
	api.POST("/users", h.Register)
	api.POST("/users/login", h.Login)
	api.GET("/users/confirm/:token", h.Confirm)
	api.POST("/users/forgot-password", h.ForgotPassword)
	api.GET("/users/forgot-password/:token", h.CheckResetToken)
	api.POST("/users/forgot-password/:token", h.ResetPassword)
	api.GET("/users/profile", requireAuth, h.Profile)
}

func registerProjectRoutes(api *gin.RouterGroup, h *handlers.ProjectHandler) {
	api.GET("/projects", h.List)
	api.POST("/projects", h.Create)
	api.POST("/projects/collaborators", h.FindCollaborator)
	api.POST("/projects/collaborators/:id", h.AddCollaborator)
	api.POST("/projects/remove-collaborator/:id", h.RemoveCollaborator)
	api.GET("/projects/:id", h.Get)
	api.PUT("/projects/:id", h.Update)
	api.DELETE("/projects/:id", h.Delete)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.POST("/tasks/state/:id", h.ToggleState)
	api.GET("/tasks/:id", h.Get)
	api.PUT("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
}
