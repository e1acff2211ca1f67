package router

import (
	"vidshare-go/internal/api/handler"
	"vidshare-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的所有 Handler
type Handlers struct {
	Auth     *handler.AuthHandler
	Video    *handler.VideoHandler
	Download *handler.DownloadHandler
	Search   *handler.SearchHandler
	Social   *handler.SocialHandler
	AI       *handler.AIHandler
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// --- 认证与用户 ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.GET("/profile", h.Auth.Profile)
			authRequired.PUT("/profile", h.Auth.UpdateProfile)
			authRequired.GET("/social-accounts", h.Auth.SocialAccounts)
			authRequired.POST("/social/connect", h.Auth.ConnectSocial)
			authRequired.DELETE("/social/disconnect/:provider", h.Auth.DisconnectSocial)
		}
	}

	// --- 视频 ---
	videos := api.Group("/videos")
	{
		// 公开接口
		videos.GET("/search", h.Search.SearchVideos)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.GET("", h.Video.List)
			videosAuth.POST("", h.Video.Upload)
			videosAuth.GET("/tags", h.Video.Tags)
			videosAuth.POST("/youtube/download", h.Download.Create)
			videosAuth.GET("/youtube/downloads", h.Download.List)

			videosAuth.GET("/:id", h.Video.Get)
			videosAuth.PUT("/:id", h.Video.Update)
			videosAuth.DELETE("/:id", h.Video.Delete)
			videosAuth.GET("/:id/processing-status", h.Video.ProcessingStatus)
			videosAuth.POST("/:id/retry", h.Video.Retry)
			videosAuth.DELETE("/:id/processing", h.Video.CancelProcessing)
		}
	}

	// --- 社交发布 ---
	social := api.Group("/social", middleware.AuthRequired())
	{
		social.GET("/platforms", h.Social.Platforms)
		social.POST("/upload", h.Social.Upload)
		social.GET("/uploads", h.Social.Uploads)
		social.GET("/upload-status/:id", h.Social.UploadStatus)
		social.POST("/uploads/:id/retry", h.Social.Retry)
		social.DELETE("/uploads/:id", h.Social.Cancel)
	}

	// --- AI 处理 ---
	ai := api.Group("/ai", middleware.AuthRequired())
	{
		ai.POST("/transcribe", h.AI.Transcribe)
		ai.POST("/analyze", h.AI.Analyze)
		ai.POST("/batch-transcribe", h.AI.BatchTranscribe)
		ai.GET("/providers", h.AI.Providers)
		ai.GET("/transcription-status/:video_id", h.AI.TranscriptionStatus)
	}
}
