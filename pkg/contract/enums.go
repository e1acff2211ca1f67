package contract

import "slices"

// VideoStatus 视频状态（封闭枚举）
type VideoStatus string

const (
	VideoStatusUploading  VideoStatus = "uploading"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"
)

// VideoStatuses 全部合法的视频状态
var VideoStatuses = []VideoStatus{
	VideoStatusUploading,
	VideoStatusProcessing,
	VideoStatusReady,
	VideoStatusFailed,
}

func (s VideoStatus) Valid() bool { return slices.Contains(VideoStatuses, s) }

// Terminal ready / failed 对本次上传而言是终态
func (s VideoStatus) Terminal() bool {
	return s == VideoStatusReady || s == VideoStatusFailed
}

// CanTransitionTo 视频生命周期：
//
//	uploading  -> processing | failed
//	processing -> ready | failed
//
// 终态不再迁移；重新处理属于新的一次尝试，由调用方显式处理。
func (s VideoStatus) CanTransitionTo(next VideoStatus) bool {
	switch s {
	case VideoStatusUploading:
		return next == VideoStatusProcessing || next == VideoStatusFailed
	case VideoStatusProcessing:
		return next == VideoStatusReady || next == VideoStatusFailed
	default:
		return false
	}
}

// ParseVideoStatus 解析并校验视频状态
func ParseVideoStatus(s string) (VideoStatus, error) {
	v := VideoStatus(s)
	if !v.Valid() {
		return "", unknownEnum("Video", "status", s, enumNames(VideoStatuses))
	}
	return v, nil
}

// Provider 社交账号提供方（封闭枚举）
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderInstagram Provider = "instagram"
	ProviderYouTube   Provider = "youtube"
	ProviderTwitter   Provider = "twitter"
	ProviderTikTok    Provider = "tiktok"
)

var Providers = []Provider{
	ProviderGoogle,
	ProviderInstagram,
	ProviderYouTube,
	ProviderTwitter,
	ProviderTikTok,
}

func (p Provider) Valid() bool { return slices.Contains(Providers, p) }

func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", unknownEnum("SocialAccount", "provider", s, enumNames(Providers))
	}
	return p, nil
}

// TaskType 视频处理任务类型（封闭枚举）
type TaskType string

const (
	TaskTypeTranscription       TaskType = "transcription"
	TaskTypeThumbnailGeneration TaskType = "thumbnail_generation"
	TaskTypeVideoCompression    TaskType = "video_compression"
	TaskTypeContentAnalysis     TaskType = "content_analysis"
)

var TaskTypes = []TaskType{
	TaskTypeTranscription,
	TaskTypeThumbnailGeneration,
	TaskTypeVideoCompression,
	TaskTypeContentAnalysis,
}

func (t TaskType) Valid() bool { return slices.Contains(TaskTypes, t) }

func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(s)
	if !t.Valid() {
		return "", unknownEnum("VideoProcessingTask", "task_type", s, enumNames(TaskTypes))
	}
	return t, nil
}

// PublishStatus 社交平台发布状态（封闭枚举）
type PublishStatus string

const (
	PublishStatusPending   PublishStatus = "pending"
	PublishStatusUploading PublishStatus = "uploading"
	PublishStatusPublished PublishStatus = "published"
	PublishStatusFailed    PublishStatus = "failed"
	PublishStatusScheduled PublishStatus = "scheduled"
)

var PublishStatuses = []PublishStatus{
	PublishStatusPending,
	PublishStatusUploading,
	PublishStatusPublished,
	PublishStatusFailed,
	PublishStatusScheduled,
}

func (p PublishStatus) Valid() bool { return slices.Contains(PublishStatuses, p) }

// Active 仍占用该平台名额的状态
func (p PublishStatus) Active() bool {
	return p == PublishStatusPending || p == PublishStatusUploading || p == PublishStatusPublished
}

func ParsePublishStatus(s string) (PublishStatus, error) {
	p := PublishStatus(s)
	if !p.Valid() {
		return "", unknownEnum("SocialMediaUpload", "status", s, enumNames(PublishStatuses))
	}
	return p, nil
}

// TaskStatus 任务状态是开放字符串，取值由任务流水线决定，不做校验。
// 下列常量只是目前已知的取值。
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusNotStarted TaskStatus = "not_started"
)

func (s TaskStatus) String() string { return string(s) }

// DownloadStatus YouTube 导入状态，同样是开放字符串
type DownloadStatus string

const (
	DownloadStatusPending    DownloadStatus = "pending"
	DownloadStatusProcessing DownloadStatus = "processing"
	DownloadStatusCompleted  DownloadStatus = "completed"
	DownloadStatusFailed     DownloadStatus = "failed"
)

func (s DownloadStatus) String() string { return string(s) }

func enumNames[E ~string](values []E) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return names
}
