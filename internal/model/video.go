package model

import "time"

// 视频状态
const (
	VideoStatusUploading  = "uploading"
	VideoStatusProcessing = "processing"
	VideoStatusReady      = "ready"
	VideoStatusFailed     = "failed"
)

// Video 视频模型
type Video struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	UserID          int64     `gorm:"not null;index:idx_videos_user_id;index:idx_composite_user_status,priority:1;comment:上传者ID" json:"user_id"`
	Title           string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description     string    `gorm:"type:text;not null;default:'';comment:视频描述" json:"description"`
	Bucket          string    `gorm:"size:100;comment:对象存储桶" json:"-"`
	ObjectName      string    `gorm:"size:500;comment:对象名" json:"-"`
	VideoFile       string    `gorm:"size:500;not null;comment:视频文件地址" json:"video_file"`
	Thumbnail       *string   `gorm:"size:500;comment:缩略图地址" json:"thumbnail"`
	DurationSeconds *int      `gorm:"comment:视频时长（秒）" json:"duration_seconds"`
	FileSize        *int64    `gorm:"comment:文件大小（字节）" json:"file_size"`
	Status          string    `gorm:"size:20;not null;default:'uploading';index:idx_videos_status;index:idx_composite_user_status,priority:2;comment:视频状态" json:"status"`
	Transcription   *string   `gorm:"type:text;comment:转写文本" json:"transcription"`
	IsPublic        bool      `gorm:"not null;default:true;comment:是否公开" json:"is_public"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	User  User                  `gorm:"foreignKey:UserID" json:"-"`
	Tags  []Tag                 `gorm:"many2many:video_tags;" json:"tags"`
	Tasks []VideoProcessingTask `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}

// Tag 标签，名称统一小写
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex;comment:标签名" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}
