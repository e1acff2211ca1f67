package dto

// VideoUpdateRequest 视频更新请求，tag_names 为 null 时不修改标签，[] 表示清空
type VideoUpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	IsPublic    *bool    `json:"is_public"`
	TagNames    []string `json:"tag_names" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// YouTubeDownloadRequest 导入 YouTube 视频
type YouTubeDownloadRequest struct {
	YouTubeURL string `json:"youtube_url" binding:"required,url,max=500"`
}
