package model

import "time"

// 任务状态（开放取值，执行端可能上报其他值）
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
	TaskStatusCancelled  = "cancelled"
)

// VideoProcessingTask 视频后台处理任务
type VideoProcessingTask struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID      int64      `gorm:"not null;index:idx_tasks_video_id;comment:所属视频" json:"video_id"`
	TaskType     string     `gorm:"size:30;not null;comment:任务类型" json:"task_type"`
	Status       string     `gorm:"size:30;not null;default:'pending';index:idx_tasks_status;comment:任务状态" json:"status"`
	Provider     string     `gorm:"size:20;comment:AI 服务商" json:"provider"`
	JobID        string     `gorm:"size:36;index;comment:最近一次派发的作业ID" json:"job_id"`
	Result       []byte     `gorm:"type:jsonb;comment:任务结果" json:"-"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (VideoProcessingTask) TableName() string {
	return "video_processing_tasks"
}

// YouTubeDownload YouTube 导入请求
type YouTubeDownload struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index:idx_downloads_user_id;comment:发起用户" json:"user_id"`
	YouTubeURL   string    `gorm:"column:youtube_url;size:500;not null" json:"youtube_url"`
	VideoID      *int64    `gorm:"index;comment:下载完成后生成的视频" json:"video_id"`
	Status       string    `gorm:"size:30;not null;default:'pending'" json:"status"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (YouTubeDownload) TableName() string {
	return "youtube_downloads"
}
