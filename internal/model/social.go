package model

import "time"

// 发布状态
const (
	PublishStatusPending   = "pending"
	PublishStatusUploading = "uploading"
	PublishStatusPublished = "published"
	PublishStatusFailed    = "failed"
	PublishStatusScheduled = "scheduled"
)

// SocialPlatform 可发布的社交平台
type SocialPlatform struct {
	ID                 int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string   `gorm:"size:50;not null;uniqueIndex" json:"name"`
	MaxVideoSize       int64    `gorm:"not null;comment:最大文件大小（字节）" json:"max_video_size"`
	SupportedFormats   []string `gorm:"type:jsonb;serializer:json;comment:支持的扩展名" json:"supported_formats"`
	MaxDurationSeconds *int     `gorm:"comment:最大时长（秒）" json:"max_duration_seconds"`
	IsActive           bool     `gorm:"not null;default:true" json:"is_active"`
}

func (SocialPlatform) TableName() string {
	return "social_platforms"
}

// SocialMediaUpload 一次发布到某个平台的记录
type SocialMediaUpload struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64      `gorm:"not null;index:idx_social_uploads_user_id" json:"user_id"`
	VideoID      int64      `gorm:"not null;index:idx_social_uploads_video_platform,priority:1" json:"video_id"`
	PlatformID   int64      `gorm:"not null;index:idx_social_uploads_video_platform,priority:2" json:"platform_id"`
	Caption      string     `gorm:"type:text;not null;default:''" json:"caption"`
	Hashtags     string     `gorm:"type:text;not null;default:''" json:"hashtags"`
	ScheduleDate *time.Time `json:"schedule_date"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ExternalID   *string    `gorm:"size:255" json:"external_id"`
	ExternalURL  *string    `gorm:"size:500" json:"external_url"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt  *time.Time `json:"published_at"`

	// 关联关系
	Video    Video          `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Platform SocialPlatform `gorm:"foreignKey:PlatformID" json:"-"`
}

func (SocialMediaUpload) TableName() string {
	return "social_media_uploads"
}

// DefaultSocialPlatforms 首次启动时写入的平台配置
func DefaultSocialPlatforms() []SocialPlatform {
	minutes := func(m int) *int { s := m * 60; return &s }
	return []SocialPlatform{
		{Name: "youtube", MaxVideoSize: 256 << 30, SupportedFormats: []string{"mp4", "mov", "avi", "webm", "mkv"}, MaxDurationSeconds: minutes(12 * 60), IsActive: true},
		{Name: "instagram", MaxVideoSize: 650 << 20, SupportedFormats: []string{"mp4", "mov"}, MaxDurationSeconds: minutes(60), IsActive: true},
		{Name: "tiktok", MaxVideoSize: 287 << 20, SupportedFormats: []string{"mp4", "webm"}, MaxDurationSeconds: minutes(10), IsActive: true},
		{Name: "twitter", MaxVideoSize: 512 << 20, SupportedFormats: []string{"mp4", "mov"}, MaxDurationSeconds: minutes(2), IsActive: true},
	}
}
