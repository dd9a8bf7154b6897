package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/streamify/internal/config"
	"github.com/user/streamify/internal/handler"
	"github.com/user/streamify/internal/middleware"
	"github.com/user/streamify/internal/repository"
)

// SetupRouter 配置路由
func SetupRouter(repos *repository.Repositories, cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	h := handler.NewHandler(repos, cfg)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// 公开接口
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	// 登录后可访问
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.AppSecret))
	{
		authed.GET("/auth/me", h.Me)
		authed.PATCH("/auth/me", h.UpdateMe)
		authed.DELETE("/auth/me", h.DeleteMe)

		authed.GET("/movies", h.ListMovies)
		authed.GET("/movies/:id", h.GetMovie)
		authed.GET("/movies/:id/genres", h.ListMovieGenres)
		authed.GET("/movies/:id/staff", h.ListMovieStaff)

		authed.GET("/genres", h.ListGenres)
		authed.GET("/genres/:id", h.GetGenre)
		authed.GET("/genres/:id/movies", h.ListGenreMovies)

		authed.GET("/staff", h.ListStaffMembers)
		authed.GET("/staff/:id", h.GetStaffMember)
		authed.GET("/staff/:id/movies", h.ListStaffMovies)

		authed.GET("/views", h.ListMyViews)
		authed.POST("/views", h.CreateView)
		authed.PATCH("/views/:movieId", h.UpdateView)
		authed.DELETE("/views/:movieId", h.DeleteView)
	}

	// 目录维护仅限管理员
	admin := api.Group("")
	admin.Use(middleware.RequireAuth(cfg.AppSecret), middleware.RequireAdmin())
	{
		admin.POST("/movies", h.CreateMovie)
		admin.PATCH("/movies/:id", h.PatchMovie)
		admin.DELETE("/movies/:id", h.DeleteMovie)
		admin.POST("/movies/:id/genres", h.AddMovieGenre)
		admin.DELETE("/movies/:id/genres/:genreId", h.RemoveMovieGenre)
		admin.POST("/movies/:id/staff", h.AddMovieStaff)
		admin.PATCH("/movies/:id/staff/:linkId", h.PatchMovieStaffRole)
		admin.DELETE("/movies/:id/staff/:linkId", h.RemoveMovieStaff)

		admin.POST("/genres", h.CreateGenre)
		admin.PATCH("/genres/:id", h.PatchGenre)
		admin.DELETE("/genres/:id", h.DeleteGenre)

		admin.POST("/staff", h.CreateStaffMember)
		admin.PATCH("/staff/:id", h.PatchStaffMember)
		admin.DELETE("/staff/:id", h.DeleteStaffMember)
		admin.PATCH("/staff/:id/movies/:linkId", h.PatchStaffMovieRole)
		admin.DELETE("/staff/:id/movies/:linkId", h.RemoveStaffMovie)
	}

	return r
}
