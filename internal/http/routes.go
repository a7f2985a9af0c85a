package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tazhibayda/devconnect-service/internal/repo"
)

func NewRouter(h *Handler, rds *repo.Redis, rlPerMin int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := AuthJWT(h.JWTSecret)
	rl := RateLimitAuth(rds, rlPerMin)

	r.POST("/api/users", rl, h.Register)

	r.POST("/api/auth", rl, h.Login)
	r.GET("/api/auth", auth, h.Me)

	posts := r.Group("/api/posts")
	{
		posts.GET("", h.ListPosts)
		posts.POST("", auth, h.CreatePost)
		posts.GET("/:id", auth, h.GetPost)
		posts.DELETE("/:id", auth, h.DeletePost)
		posts.PUT("/like/:id", auth, h.LikePost)
		posts.PUT("/unlike/:id", auth, h.UnlikePost)
		posts.POST("/comment/:id", auth, h.AddComment)
		posts.DELETE("/comment/:id/:comment_id", auth, h.DeleteComment)
	}

	profile := r.Group("/api/profile")
	{
		profile.GET("", h.ListProfiles)
		profile.POST("", auth, h.UpsertProfile)
		profile.DELETE("", auth, h.DeleteAccount)
		profile.GET("/me", auth, h.MyProfile)
		profile.GET("/user/:user_id", h.ProfileByUser)
		profile.PUT("/experience", auth, h.AddExperience)
		profile.DELETE("/experience/:exp_id", auth, h.RemoveExperience)
		profile.PUT("/education", auth, h.AddEducation)
		profile.DELETE("/education/:edu_id", auth, h.RemoveEducation)
	}

	return r
}
