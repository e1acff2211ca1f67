package service

import (
	"encoding/json"
	"fmt"
	"time"

	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"
)

// formatDuration 秒数转 HH:MM:SS
func formatDuration(seconds *int) contract.Optional[string] {
	if seconds == nil || *seconds < 0 {
		return contract.None[string]()
	}
	s := *seconds
	return contract.Some(fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60))
}

func optionalTime(t *time.Time) contract.Optional[contract.Timestamp] {
	if t == nil {
		return contract.None[contract.Timestamp]()
	}
	return contract.Some(contract.NewTimestamp(*t))
}

func toContractUser(u *model.User) contract.User {
	return contract.User{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: contract.FromPtr(u.ProfilePicture),
		Bio:            contract.FromPtr(u.Bio),
		IsVerified:     u.IsVerified,
		CreatedAt:      contract.NewTimestamp(u.CreatedAt),
	}
}

func toContractTag(t *model.Tag) contract.Tag {
	return contract.Tag{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: contract.NewTimestamp(t.CreatedAt),
	}
}

func toContractTags(tags []model.Tag) []contract.Tag {
	out := make([]contract.Tag, 0, len(tags))
	for i := range tags {
		out = append(out, toContractTag(&tags[i]))
	}
	return out
}

func toContractVideo(v *model.Video) contract.Video {
	return contract.Video{
		ID:            v.ID,
		User:          v.UserID,
		Title:         v.Title,
		Description:   v.Description,
		VideoFile:     v.VideoFile,
		Thumbnail:     contract.FromPtr(v.Thumbnail),
		Duration:      formatDuration(v.DurationSeconds),
		FileSize:      contract.FromPtr(v.FileSize),
		Status:        contract.VideoStatus(v.Status),
		Transcription: contract.FromPtr(v.Transcription),
		Tags:          toContractTags(v.Tags),
		IsPublic:      v.IsPublic,
		CreatedAt:     contract.NewTimestamp(v.CreatedAt),
		UpdatedAt:     contract.NewTimestamp(v.UpdatedAt),
	}
}

func toContractVideos(videos []model.Video) []contract.Video {
	out := make([]contract.Video, 0, len(videos))
	for i := range videos {
		out = append(out, toContractVideo(&videos[i]))
	}
	return out
}

func toContractSocialAccount(a *model.SocialAccount) contract.SocialAccount {
	return contract.SocialAccount{
		ID:        a.ID,
		Provider:  contract.Provider(a.Provider),
		SocialID:  a.SocialID,
		IsActive:  a.IsActive,
		CreatedAt: contract.NewTimestamp(a.CreatedAt),
	}
}

func toContractTask(t *model.VideoProcessingTask) contract.VideoProcessingTask {
	task := contract.VideoProcessingTask{
		ID:           t.ID,
		Video:        t.VideoID,
		TaskType:     contract.TaskType(t.TaskType),
		Status:       contract.TaskStatus(t.Status),
		ErrorMessage: contract.FromPtr(t.ErrorMessage),
		StartedAt:    optionalTime(t.StartedAt),
		CompletedAt:  optionalTime(t.CompletedAt),
		CreatedAt:    contract.NewTimestamp(t.CreatedAt),
	}
	if len(t.Result) > 0 && json.Valid(t.Result) {
		task.Result = contract.Some(json.RawMessage(t.Result))
	}
	return task
}

func toContractTasks(tasks []model.VideoProcessingTask) []contract.VideoProcessingTask {
	out := make([]contract.VideoProcessingTask, 0, len(tasks))
	for i := range tasks {
		out = append(out, toContractTask(&tasks[i]))
	}
	return out
}

func toContractDownload(d *model.YouTubeDownload) contract.YouTubeDownload {
	return contract.YouTubeDownload{
		ID:           d.ID,
		YouTubeURL:   d.YouTubeURL,
		Video:        contract.FromPtr(d.VideoID),
		Status:       contract.DownloadStatus(d.Status),
		ErrorMessage: contract.FromPtr(d.ErrorMessage),
		CreatedAt:    contract.NewTimestamp(d.CreatedAt),
	}
}

func toContractPlatform(p *model.SocialPlatform) contract.SocialPlatform {
	return contract.SocialPlatform{
		ID:               p.ID,
		Name:             p.Name,
		MaxVideoSize:     p.MaxVideoSize,
		SupportedFormats: p.SupportedFormats,
		MaxDuration:      formatDuration(p.MaxDurationSeconds),
		IsActive:         p.IsActive,
	}
}

func toContractUpload(u *model.SocialMediaUpload) contract.SocialMediaUpload {
	return contract.SocialMediaUpload{
		ID:           u.ID,
		Video:        u.VideoID,
		VideoTitle:   u.Video.Title,
		Platform:     u.PlatformID,
		PlatformName: u.Platform.Name,
		Caption:      u.Caption,
		Hashtags:     u.Hashtags,
		ScheduleDate: optionalTime(u.ScheduleDate),
		Status:       contract.PublishStatus(u.Status),
		ExternalID:   contract.FromPtr(u.ExternalID),
		ExternalURL:  contract.FromPtr(u.ExternalURL),
		ErrorMessage: contract.FromPtr(u.ErrorMessage),
		CreatedAt:    contract.NewTimestamp(u.CreatedAt),
		PublishedAt:  optionalTime(u.PublishedAt),
	}
}
