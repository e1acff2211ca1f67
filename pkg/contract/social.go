package contract

import "encoding/json"

// SocialPlatform 可发布的社交平台及其限制
type SocialPlatform struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	MaxVideoSize     int64            `json:"max_video_size"`
	SupportedFormats []string         `json:"supported_formats"`
	MaxDuration      Optional[string] `json:"max_duration,omitzero"`
	IsActive         bool             `json:"is_active"`
}

var socialPlatformSpec = recordSpec{
	entity:   "SocialPlatform",
	required: []string{"id", "name", "max_video_size", "supported_formats", "is_active"},
	ids:      []string{"id"},
}

func (p *SocialPlatform) UnmarshalJSON(data []byte) error {
	type alias SocialPlatform
	return decodeRecord(data, socialPlatformSpec, (*alias)(p))
}

func (p SocialPlatform) MarshalJSON() ([]byte, error) {
	type alias SocialPlatform
	if p.SupportedFormats == nil {
		p.SupportedFormats = []string{}
	}
	return json.Marshal(alias(p))
}

// SocialMediaUpload 一次发布到社交平台的记录
type SocialMediaUpload struct {
	ID           int64               `json:"id"`
	Video        int64               `json:"video"`
	VideoTitle   string              `json:"video_title"`
	Platform     int64               `json:"platform"`
	PlatformName string              `json:"platform_name"`
	Caption      string              `json:"caption"`
	Hashtags     string              `json:"hashtags"`
	ScheduleDate Optional[Timestamp] `json:"schedule_date,omitzero"`
	Status       PublishStatus       `json:"status"`
	ExternalID   Optional[string]    `json:"external_id,omitzero"`
	ExternalURL  Optional[string]    `json:"external_url,omitzero"`
	ErrorMessage Optional[string]    `json:"error_message,omitzero"`
	CreatedAt    Timestamp           `json:"created_at"`
	PublishedAt  Optional[Timestamp] `json:"published_at,omitzero"`
}

var socialMediaUploadSpec = recordSpec{
	entity: "SocialMediaUpload",
	required: []string{
		"id", "video", "video_title", "platform", "platform_name",
		"caption", "hashtags", "status", "created_at",
	},
	ids: []string{"id", "video", "platform"},
}

func (u *SocialMediaUpload) UnmarshalJSON(data []byte) error {
	type alias SocialMediaUpload
	if err := decodeRecord(data, socialMediaUploadSpec, (*alias)(u)); err != nil {
		return err
	}
	if !u.Status.Valid() {
		return unknownEnum("SocialMediaUpload", "status", string(u.Status), enumNames(PublishStatuses))
	}
	return nil
}

// ProcessingStatus 视频处理进度汇总
type ProcessingStatus struct {
	VideoID        int64                 `json:"video_id"`
	Status         VideoStatus           `json:"status"`
	Progress       float64               `json:"progress"`
	TotalTasks     int                   `json:"total_tasks"`
	CompletedTasks int                   `json:"completed_tasks"`
	FailedTasks    int                   `json:"failed_tasks"`
	Tasks          []VideoProcessingTask `json:"tasks"`
}

var processingStatusSpec = recordSpec{
	entity: "ProcessingStatus",
	required: []string{
		"video_id", "status", "progress", "total_tasks",
		"completed_tasks", "failed_tasks", "tasks",
	},
	ids: []string{"video_id"},
}

func (p *ProcessingStatus) UnmarshalJSON(data []byte) error {
	type alias ProcessingStatus
	if err := decodeRecord(data, processingStatusSpec, (*alias)(p)); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return unknownEnum("ProcessingStatus", "status", string(p.Status), enumNames(VideoStatuses))
	}
	return nil
}

// NewProcessingStatus 根据任务列表计算进度（completed / total * 100）
func NewProcessingStatus(videoID int64, status VideoStatus, tasks []VideoProcessingTask) ProcessingStatus {
	ps := ProcessingStatus{
		VideoID:    videoID,
		Status:     status,
		TotalTasks: len(tasks),
		Tasks:      tasks,
	}
	if ps.Tasks == nil {
		ps.Tasks = []VideoProcessingTask{}
	}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusCompleted:
			ps.CompletedTasks++
		case TaskStatusFailed:
			ps.FailedTasks++
		}
	}
	if ps.TotalTasks > 0 {
		ps.Progress = float64(ps.CompletedTasks) / float64(ps.TotalTasks) * 100
	}
	return ps
}

// TranscriptionStatus 视频转写状态
type TranscriptionStatus struct {
	VideoID          int64               `json:"video_id"`
	HasTranscription bool                `json:"has_transcription"`
	Transcription    Optional[string]    `json:"transcription,omitzero"`
	Status           TaskStatus          `json:"status"`
	ErrorMessage     Optional[string]    `json:"error_message,omitzero"`
	StartedAt        Optional[Timestamp] `json:"started_at,omitzero"`
	CompletedAt      Optional[Timestamp] `json:"completed_at,omitzero"`
}

var transcriptionStatusSpec = recordSpec{
	entity:   "TranscriptionStatus",
	required: []string{"video_id", "has_transcription", "status"},
	ids:      []string{"video_id"},
}

func (t *TranscriptionStatus) UnmarshalJSON(data []byte) error {
	type alias TranscriptionStatus
	return decodeRecord(data, transcriptionStatusSpec, (*alias)(t))
}
