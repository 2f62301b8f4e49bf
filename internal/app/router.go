package app

import (
	"calibration_quiz/docs"
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/middleware"
	"calibration_quiz/pkg/monitoring"
	"calibration_quiz/web"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	static := http.FS(web.Static())
	router.StaticFS("/static", static)
	router.GET("/favicon.ico", func(ctx *gin.Context) {
		ctx.FileFromFS("favicon.ico", static)
	})

	// 其余路由都需要解析当前身份（会话 cookie 或 Bearer token）
	site := router.Group("/")
	site.Use(middleware.IdentityMiddleware(a.services.auth, cfg.Session.CookieName))

	// 1. 页面
	a.registerPageRoutes(site, c)

	// 2. 测验与账户
	a.registerPublicRoutes(site, c)

	// 3. 需要登录的接口
	authorized := site.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.DELETE("/profile", c.user.DeleteProfile)
		authorized.GET("/api/score-history", c.score.GetHistory)
		authorized.GET("/api/profile", c.user.GetProfile)
	}
}

func (a *App) registerPageRoutes(site *gin.RouterGroup, c *controllers) {
	site.GET("/", c.page.Index)
	site.GET("/questionnaire", c.page.Questionnaire)
	site.GET("/how-to-improve", c.page.HowToImprove)
	site.GET("/imprint", c.page.Imprint)
	site.GET("/profile", c.page.Profile)
}

func (a *App) registerPublicRoutes(site *gin.RouterGroup, c *controllers) {
	site.GET("/questions", c.quiz.GetQuestions)
	site.POST("/submit", c.quiz.Submit)

	site.POST("/register", c.auth.Register)
	site.POST("/token", c.auth.Token)
	site.GET("/logout", c.auth.Logout)
	site.GET("/check-auth", c.auth.CheckAuth)

	api := site.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/users/exists", c.user.UserExists)
	}
}
