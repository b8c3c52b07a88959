package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/config"
	"blogmaster/controllers"
	"blogmaster/middleware"
	"blogmaster/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, cfg config.AppConfig) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.Ginzap(utils.Logger))
	r.Use(utils.RecoveryWithZap(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded images are served from the public static path
	r.Static("/static", cfg.StaticDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db, cfg)
	userController := controllers.NewUserController(db)
	categoryController := controllers.NewCategoryController(db)
	postController := controllers.NewPostController(db, cfg)
	commentController := controllers.NewCommentController(db)
	adminController := controllers.NewAdminController(db)

	authRequired := middleware.AuthRequired(db, cfg)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)

	userGroup := api.Group("/user")
	userGroup.Use(authRequired)
	userGroup.GET("/me", userController.Me)
	userGroup.PUT("/password-update", userController.UpdatePassword)
	userGroup.PUT("/set-active", userController.SetActive)
	userGroup.DELETE("/remove", userController.Remove)

	categoryGroup := api.Group("/category")
	categoryGroup.GET("/all", categoryController.All)
	categoryGroup.GET("/by_id/:id", categoryController.GetByID)
	categoryGroup.POST("/create", authRequired, middleware.AdminRequired(), categoryController.Create)
	categoryGroup.DELETE("/remove/:id", authRequired, middleware.AdminRequired(), categoryController.Remove)

	postsGroup := api.Group("/posts")
	postsGroup.GET("/all", postController.All)
	postsGroup.GET("/all/by_category/:category_id", postController.AllByCategory)
	postsGroup.GET("/all/by_user", authRequired, postController.AllByUser)
	postsGroup.GET("/by_user/:id", authRequired, postController.GetByIDForUser)
	postsGroup.GET("/:id", postController.GetByID)
	postsGroup.POST("/create", authRequired, postController.Create)
	postsGroup.PUT("/update/:id", authRequired, postController.Update)
	postsGroup.DELETE("/remove/:id", authRequired, postController.Remove)

	commentGroup := api.Group("/comment")
	commentGroup.GET("/all/:post_id", commentController.AllForPost)
	commentGroup.POST("/create/:post_id", authRequired, commentController.Create)
	commentGroup.DELETE("/remove/:post_id/:comment_id", authRequired, commentController.Remove)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authRequired, middleware.AdminRequired())
	adminGroup.DELETE("/remove/post/:id", adminController.RemovePost)
	adminGroup.GET("/all/users", adminController.AllUsers)
	adminGroup.DELETE("/remove/user/:id", adminController.RemoveUser)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
