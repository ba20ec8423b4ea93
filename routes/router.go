package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
	"gorm.io/gorm"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/controllers"
	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/templates"
	"github.com/yatube/yatube/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
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

	// Cookie sessions back the CSRF token store.
	store := cookie.NewStore([]byte(cfg.SecretKey))
	r.Use(sessions.Sessions("yatube", store))
	if !cfg.DisableCSRF {
		r.Use(csrf.Middleware(csrf.Options{
			Secret:    cfg.SecretKey,
			ErrorFunc: utils.CSRFFailurePage,
		}))
	}

	r.Use(middleware.CurrentUser())

	r.SetHTMLTemplate(templates.Load())
	r.Static("/media", cfg.MediaRoot)

	posts := controllers.NewPostController(db)
	follows := controllers.NewFollowController(db)
	auth := controllers.NewAuthController(db)

	indexCacheTTL := time.Duration(cfg.IndexCacheTTLSeconds) * time.Second
	r.GET("/", middleware.CachePage(indexCacheTTL), posts.Index)
	r.GET("/group/:slug/", posts.GroupPosts)
	r.GET("/profile/:username/", posts.Profile)
	r.GET("/posts/:id/", posts.PostDetail)

	private := r.Group("")
	private.Use(middleware.LoginRequired())
	private.GET("/create/", posts.PostCreatePage)
	private.POST("/create/", posts.PostCreate)
	private.GET("/posts/:id/edit/", posts.PostEditPage)
	private.POST("/posts/:id/edit/", posts.PostEdit)
	private.POST("/posts/:id/comment/", posts.AddComment)
	private.GET("/follow/", follows.FollowIndex)
	private.GET("/profile/:username/follow/", follows.ProfileFollow)
	private.GET("/profile/:username/unfollow/", follows.ProfileUnfollow)

	users := r.Group("/users")
	users.Use(middleware.RateLimitMiddleware())
	users.GET("/signup/", auth.SignupPage)
	users.POST("/signup/", auth.Signup)
	users.GET("/login/", auth.LoginPage)
	users.POST("/login/", auth.Login)
	users.GET("/logout/", auth.Logout)

	r.NoRoute(utils.NotFoundPage)

	return r
}
