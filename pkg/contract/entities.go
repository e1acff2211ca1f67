// Package contract 定义客户端与服务端之间交换的记录结构、
// 枚举取值域、可缺省规则以及统一的分页信封。
package contract

import (
	"encoding/json"
	"time"
)

// Timestamp ISO-8601 时间字符串。契约层不解析，交给使用方处理。
type Timestamp string

// NewTimestamp 服务端生成时间戳时使用（UTC, RFC3339 微秒精度）
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format("2006-01-02T15:04:05.000000Z07:00"))
}

// User 用户
type User struct {
	ID             int64            `json:"id"`
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	ProfilePicture Optional[string] `json:"profile_picture,omitzero"`
	Bio            Optional[string] `json:"bio,omitzero"`
	IsVerified     bool             `json:"is_verified"`
	CreatedAt      Timestamp        `json:"created_at"`
}

var userSpec = recordSpec{
	entity:   "User",
	required: []string{"id", "email", "first_name", "last_name", "is_verified", "created_at"},
	ids:      []string{"id"},
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	return decodeRecord(data, userSpec, (*alias)(u))
}

// BlankOptionalFields 存在但为空的可选字段
func (u User) BlankOptionalFields() []string {
	return blankFields(
		blankCheck{"profile_picture", u.ProfilePicture.Blank()},
		blankCheck{"bio", u.Bio.Blank()},
	)
}

// Tag 标签
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at"`
}

var tagSpec = recordSpec{
	entity:   "Tag",
	required: []string{"id", "name", "created_at"},
	ids:      []string{"id"},
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	type alias Tag
	return decodeRecord(data, tagSpec, (*alias)(t))
}

// Video 视频
type Video struct {
	ID            int64            `json:"id"`
	User          int64            `json:"user"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	VideoFile     string           `json:"video_file"`
	Thumbnail     Optional[string] `json:"thumbnail,omitzero"`
	Duration      Optional[string] `json:"duration,omitzero"`
	FileSize      Optional[int64]  `json:"file_size,omitzero"`
	Status        VideoStatus      `json:"status"`
	Transcription Optional[string] `json:"transcription,omitzero"`
	Tags          []Tag            `json:"tags"`
	IsPublic      bool             `json:"is_public"`
	CreatedAt     Timestamp        `json:"created_at"`
	UpdatedAt     Timestamp        `json:"updated_at"`
}

var videoSpec = recordSpec{
	entity: "Video",
	required: []string{
		"id", "user", "title", "description", "video_file", "status",
		"tags", "is_public", "created_at", "updated_at",
	},
	ids: []string{"id", "user"},
}

func (v *Video) UnmarshalJSON(data []byte) error {
	type alias Video
	if err := decodeRecord(data, videoSpec, (*alias)(v)); err != nil {
		return err
	}
	if !v.Status.Valid() {
		return unknownEnum("Video", "status", string(v.Status), enumNames(VideoStatuses))
	}
	v.Tags = uniqueTags(v.Tags)
	return nil
}

func (v Video) MarshalJSON() ([]byte, error) {
	type alias Video
	if v.Tags == nil {
		v.Tags = []Tag{}
	}
	return json.Marshal(alias(v))
}

func (v Video) BlankOptionalFields() []string {
	return blankFields(
		blankCheck{"thumbnail", v.Thumbnail.Blank()},
		blankCheck{"duration", v.Duration.Blank()},
		blankCheck{"transcription", v.Transcription.Blank()},
	)
}

// HasTag 按标签 ID 判断（tags 是以 ID 为键的无序集合）
func (v Video) HasTag(id int64) bool {
	for _, t := range v.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// SameTags 两个视频的标签集合是否相同（忽略顺序）
func (v Video) SameTags(other Video) bool {
	a, b := uniqueTags(v.Tags), uniqueTags(other.Tags)
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if !other.HasTag(t.ID) {
			return false
		}
	}
	return true
}

// uniqueTags 按 ID 去重，保留首次出现的顺序
func uniqueTags(tags []Tag) []Tag {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[int64]struct{}, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SocialAccount 关联的社交账号
type SocialAccount struct {
	ID        int64     `json:"id"`
	Provider  Provider  `json:"provider"`
	SocialID  string    `json:"social_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

var socialAccountSpec = recordSpec{
	entity:   "SocialAccount",
	required: []string{"id", "provider", "social_id", "is_active", "created_at"},
	ids:      []string{"id"},
}

func (a *SocialAccount) UnmarshalJSON(data []byte) error {
	type alias SocialAccount
	if err := decodeRecord(data, socialAccountSpec, (*alias)(a)); err != nil {
		return err
	}
	if !a.Provider.Valid() {
		return unknownEnum("SocialAccount", "provider", string(a.Provider), enumNames(Providers))
	}
	return nil
}

// VideoProcessingTask 视频处理任务。Status 为开放字符串。
type VideoProcessingTask struct {
	ID           int64                     `json:"id"`
	Video        int64                     `json:"video"`
	TaskType     TaskType                  `json:"task_type"`
	Status       TaskStatus                `json:"status"`
	Result       Optional[json.RawMessage] `json:"result,omitzero"`
	ErrorMessage Optional[string]          `json:"error_message,omitzero"`
	StartedAt    Optional[Timestamp]       `json:"started_at,omitzero"`
	CompletedAt  Optional[Timestamp]       `json:"completed_at,omitzero"`
	CreatedAt    Timestamp                 `json:"created_at"`
}

var processingTaskSpec = recordSpec{
	entity:   "VideoProcessingTask",
	required: []string{"id", "video", "task_type", "status", "created_at"},
	ids:      []string{"id", "video"},
}

func (t *VideoProcessingTask) UnmarshalJSON(data []byte) error {
	type alias VideoProcessingTask
	if err := decodeRecord(data, processingTaskSpec, (*alias)(t)); err != nil {
		return err
	}
	if !t.TaskType.Valid() {
		return unknownEnum("VideoProcessingTask", "task_type", string(t.TaskType), enumNames(TaskTypes))
	}
	return nil
}

func (t VideoProcessingTask) BlankOptionalFields() []string {
	return blankFields(
		blankCheck{"result", t.Result.Blank()},
		blankCheck{"error_message", t.ErrorMessage.Blank()},
		blankCheck{"started_at", t.StartedAt.Blank()},
		blankCheck{"completed_at", t.CompletedAt.Blank()},
	)
}

// YouTubeDownload YouTube 导入任务，完成后 Video 指向生成的视频
type YouTubeDownload struct {
	ID           int64            `json:"id"`
	YouTubeURL   string           `json:"youtube_url"`
	Video        Optional[int64]  `json:"video,omitzero"`
	Status       DownloadStatus   `json:"status"`
	ErrorMessage Optional[string] `json:"error_message,omitzero"`
	CreatedAt    Timestamp        `json:"created_at"`
}

var youtubeDownloadSpec = recordSpec{
	entity:   "YouTubeDownload",
	required: []string{"id", "youtube_url", "status", "created_at"},
	ids:      []string{"id", "video"},
}

func (d *YouTubeDownload) UnmarshalJSON(data []byte) error {
	type alias YouTubeDownload
	return decodeRecord(data, youtubeDownloadSpec, (*alias)(d))
}

type blankCheck struct {
	field string
	blank bool
}

func blankFields(checks ...blankCheck) []string {
	var out []string
	for _, c := range checks {
		if c.blank {
			out = append(out, c.field)
		}
	}
	return out
}
