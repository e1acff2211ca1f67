package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidshare-go/internal/config"
	infraKafka "vidshare-go/internal/infra/kafka"
	infraMinio "vidshare-go/internal/infra/minio"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	eventKeyPrefix = "vidshare:events:"
	eventDedupTTL  = 24 * time.Hour

	defaultDownloadTitle = "Downloaded Video"
	maxTitleLen          = 200
	maxDescriptionLen    = 500
)

// videoAction 收到视频状态事件后的处理方式
type videoAction int

const (
	videoActionDrop videoAction = iota
	videoActionTransition
	videoActionMetadata
)

// decideVideoAction 合法迁移才改状态；同状态且未终结时只更新元数据
func decideVideoAction(cur, next contract.VideoStatus) videoAction {
	switch {
	case cur.CanTransitionTo(next):
		return videoActionTransition
	case cur == next && !cur.Terminal():
		return videoActionMetadata
	default:
		return videoActionDrop
	}
}

// transcriptionText 从转写任务结果中取出文本：JSON 字符串，或含 text / transcription 字段的对象
func transcriptionText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var obj struct {
		Text          string `json:"text"`
		Transcription string `json:"transcription"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	if obj.Text != "" {
		return obj.Text, true
	}
	return obj.Transcription, obj.Transcription != ""
}

// taskUpdates 任务状态事件对应的字段更新
func taskUpdates(task *model.VideoProcessingTask, ev *infraKafka.PipelineEvent, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"status": ev.Status}
	switch contract.TaskStatus(ev.Status) {
	case contract.TaskStatusProcessing:
		if task.StartedAt == nil {
			updates["started_at"] = now
		}
	case contract.TaskStatusCompleted, contract.TaskStatusFailed:
		if task.StartedAt == nil {
			updates["started_at"] = now
		}
		updates["completed_at"] = now
	}
	if len(ev.Result) > 0 && json.Valid(ev.Result) {
		updates["result"] = string(ev.Result)
	}
	if ev.ErrorMessage != nil {
		updates["error_message"] = *ev.ErrorMessage
	}
	return updates
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func eventTime(ev *infraKafka.PipelineEvent) time.Time {
	if ev.OccurredAt != nil && !ev.OccurredAt.IsZero() {
		return ev.OccurredAt.UTC()
	}
	return time.Now().UTC()
}

type PipelineService struct {
	videoRepo    videoStore
	taskRepo     taskStore
	downloadRepo downloadStateStore
	uploadRepo   uploadStateStore
}

func NewPipelineService(
	videoRepo *repository.VideoRepository,
	taskRepo *repository.ProcessingTaskRepository,
	downloadRepo *repository.YouTubeDownloadRepository,
	uploadRepo *repository.SocialUploadRepository,
) *PipelineService {
	return &PipelineService{
		videoRepo:    videoRepo,
		taskRepo:     taskRepo,
		downloadRepo: downloadRepo,
		uploadRepo:   uploadRepo,
	}
}

// HandleEvent 处理一条管线事件，按 event_id 去重；处理失败时撤销去重标记
func (s *PipelineService) HandleEvent(ctx context.Context, ev *infraKafka.PipelineEvent) error {
	key := eventKeyPrefix + ev.EventID
	first, err := markEventOnce(ctx, key, eventDedupTTL)
	if err != nil {
		logger.Warn("Event dedup unavailable, processing anyway", zap.String("event_id", ev.EventID), zap.Error(err))
		first = true
	}
	if !first {
		logger.Info("Duplicate pipeline event skipped", zap.String("event_id", ev.EventID))
		return nil
	}

	if err := s.apply(ctx, ev); err != nil {
		if uerr := unmarkEvent(ctx, key); uerr != nil {
			logger.Warn("Unmark event failed", zap.String("event_id", ev.EventID), zap.Error(uerr))
		}
		return err
	}
	return nil
}

func (s *PipelineService) apply(ctx context.Context, ev *infraKafka.PipelineEvent) error {
	switch ev.Kind {
	case infraKafka.EventVideoStatus:
		return s.applyVideoStatus(ev)
	case infraKafka.EventTaskStatus:
		return s.applyTaskStatus(ev)
	case infraKafka.EventDownloadStatus:
		return s.applyDownloadStatus(ctx, ev)
	case infraKafka.EventPublishStatus:
		return s.applyPublishStatus(ev)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func dropEvent(ev *infraKafka.PipelineEvent, reason string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("event_id", ev.EventID),
		zap.String("kind", string(ev.Kind)),
		zap.String("status", ev.Status),
		zap.String("reason", reason),
	)
	logger.Warn("Pipeline event dropped", fields...)
}

func (s *PipelineService) applyVideoStatus(ev *infraKafka.PipelineEvent) error {
	next, err := contract.ParseVideoStatus(ev.Status)
	if err != nil {
		dropEvent(ev, "unknown video status")
		return nil
	}

	video, err := s.videoRepo.GetByID(ev.VideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dropEvent(ev, "video not found", zap.Int64("video_id", ev.VideoID))
			return nil
		}
		return err
	}

	cur := contract.VideoStatus(video.Status)
	extra := make(map[string]interface{})
	if ev.Thumbnail != nil {
		extra["thumbnail"] = *ev.Thumbnail
	}
	if ev.DurationSeconds != nil {
		extra["duration_seconds"] = *ev.DurationSeconds
	}
	if ev.FileSize != nil {
		extra["file_size"] = *ev.FileSize
	}

	switch decideVideoAction(cur, next) {
	case videoActionTransition:
		ok, err := s.videoRepo.UpdateStatusIf(video.ID, string(cur), string(next), extra)
		if err != nil {
			return fmt.Errorf("update video %d status: %w", video.ID, err)
		}
		if !ok {
			dropEvent(ev, "status changed concurrently", zap.Int64("video_id", video.ID))
			return nil
		}
	case videoActionMetadata:
		if len(extra) == 0 {
			return nil
		}
		if _, err := s.videoRepo.Update(video.ID, extra); err != nil {
			return fmt.Errorf("update video %d metadata: %w", video.ID, err)
		}
	default:
		dropEvent(ev, "illegal status transition",
			zap.Int64("video_id", video.ID), zap.String("from", string(cur)))
		return nil
	}

	logger.Info("Video status updated",
		zap.Int64("video_id", video.ID),
		zap.String("from", string(cur)),
		zap.String("to", string(next)),
	)

	updated, err := s.videoRepo.GetByID(video.ID)
	if err != nil {
		return err
	}
	syncSearchIndex(updated)
	return nil
}

func (s *PipelineService) applyTaskStatus(ev *infraKafka.PipelineEvent) error {
	task, err := s.taskRepo.GetByID(ev.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dropEvent(ev, "task not found", zap.Int64("task_id", ev.TaskID))
			return nil
		}
		return err
	}
	if task.Status == model.TaskStatusCancelled {
		dropEvent(ev, "task cancelled", zap.Int64("task_id", task.ID))
		return nil
	}

	if _, err := s.taskRepo.Update(task.ID, taskUpdates(task, ev, eventTime(ev))); err != nil {
		return fmt.Errorf("update task %d: %w", task.ID, err)
	}

	if task.TaskType != string(contract.TaskTypeTranscription) || ev.Status != string(contract.TaskStatusCompleted) {
		return nil
	}
	text, ok := transcriptionText(ev.Result)
	if !ok {
		return nil
	}
	video, err := s.videoRepo.Update(task.VideoID, map[string]interface{}{"transcription": text})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("store transcription for video %d: %w", task.VideoID, err)
	}
	syncSearchIndex(video)
	return nil
}

func (s *PipelineService) applyDownloadStatus(ctx context.Context, ev *infraKafka.PipelineEvent) error {
	download, err := s.downloadRepo.GetByID(ev.DownloadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dropEvent(ev, "download not found", zap.Int64("download_id", ev.DownloadID))
			return nil
		}
		return err
	}
	if download.Status == string(contract.DownloadStatusCompleted) {
		dropEvent(ev, "download already completed", zap.Int64("download_id", download.ID))
		return nil
	}

	if ev.Status != string(contract.DownloadStatusCompleted) {
		updates := map[string]interface{}{"status": ev.Status}
		if ev.ErrorMessage != nil {
			updates["error_message"] = *ev.ErrorMessage
		}
		return s.updateDownloadUnlessCompleted(ev, download.ID, updates)
	}

	if ev.ObjectName == "" {
		return s.updateDownloadUnlessCompleted(ev, download.ID, map[string]interface{}{
			"status":        string(contract.DownloadStatusFailed),
			"error_message": "Could not find downloaded file",
		})
	}

	// 先认领再建视频，重复的完成事件只有一个能走到这里
	claimed, err := s.downloadRepo.UpdateUnlessStatus(download.ID, string(contract.DownloadStatusCompleted), map[string]interface{}{
		"status":        string(contract.DownloadStatusCompleted),
		"error_message": nil,
	})
	if err != nil {
		return fmt.Errorf("claim download %d: %w", download.ID, err)
	}
	if !claimed {
		dropEvent(ev, "download already completed", zap.Int64("download_id", download.ID))
		return nil
	}

	video, err := s.createDownloadedVideo(download, ev)
	if err != nil {
		// 释放认领，事件重投时可以再次处理
		if _, rerr := s.downloadRepo.Update(download.ID, map[string]interface{}{"status": download.Status}); rerr != nil {
			logger.Error("Release download claim failed", zap.Int64("download_id", download.ID), zap.Error(rerr))
		}
		return err
	}

	if _, err := s.downloadRepo.Update(download.ID, map[string]interface{}{"video_id": video.ID}); err != nil {
		return fmt.Errorf("link download %d to video %d: %w", download.ID, video.ID, err)
	}

	if err := dispatchProcessing(ctx, s.taskRepo, video); err != nil {
		logger.Error("Start processing of downloaded video failed", zap.Int64("video_id", video.ID), zap.Error(err))
		_, _ = s.videoRepo.UpdateStatusIf(video.ID, model.VideoStatusProcessing, model.VideoStatusFailed, nil)
	}

	logger.Info("YouTube download completed",
		zap.Int64("download_id", download.ID),
		zap.Int64("video_id", video.ID),
	)
	return nil
}

func (s *PipelineService) updateDownloadUnlessCompleted(ev *infraKafka.PipelineEvent, id int64, updates map[string]interface{}) error {
	ok, err := s.downloadRepo.UpdateUnlessStatus(id, string(contract.DownloadStatusCompleted), updates)
	if err != nil {
		return fmt.Errorf("update download %d: %w", id, err)
	}
	if !ok {
		dropEvent(ev, "download already completed", zap.Int64("download_id", id))
	}
	return nil
}

func (s *PipelineService) createDownloadedVideo(download *model.YouTubeDownload, ev *infraKafka.PipelineEvent) (*model.Video, error) {
	minioCfg := config.GetMinIO()
	bucket := ev.Bucket
	if bucket == "" {
		bucket = minioCfg.VideoBucket
	}
	title := strings.TrimSpace(ev.Title)
	if title == "" {
		title = defaultDownloadTitle
	}

	video := &model.Video{
		UserID:          download.UserID,
		Title:           truncateRunes(title, maxTitleLen),
		Description:     truncateRunes(ev.Description, maxDescriptionLen),
		Bucket:          bucket,
		ObjectName:      ev.ObjectName,
		VideoFile:       infraMinio.PublicURL(minioCfg, bucket, ev.ObjectName),
		Thumbnail:       ev.Thumbnail,
		DurationSeconds: ev.DurationSeconds,
		FileSize:        ev.FileSize,
		Status:          model.VideoStatusProcessing,
		IsPublic:        true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, fmt.Errorf("create video for download %d: %w", download.ID, err)
	}
	return video, nil
}

func (s *PipelineService) applyPublishStatus(ev *infraKafka.PipelineEvent) error {
	status, err := contract.ParsePublishStatus(ev.Status)
	if err != nil {
		dropEvent(ev, "unknown publish status")
		return nil
	}

	upload, err := s.uploadRepo.GetByID(ev.UploadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dropEvent(ev, "upload not found", zap.Int64("upload_id", ev.UploadID))
			return nil
		}
		return err
	}
	if upload.Status == model.PublishStatusPublished {
		dropEvent(ev, "upload already published", zap.Int64("upload_id", upload.ID))
		return nil
	}
	if upload.Status == model.PublishStatusFailed && upload.ErrorMessage != nil && *upload.ErrorMessage == cancelledByUser {
		dropEvent(ev, "upload cancelled", zap.Int64("upload_id", upload.ID))
		return nil
	}

	updates := map[string]interface{}{"status": string(status)}
	if ev.ExternalID != nil {
		updates["external_id"] = *ev.ExternalID
	}
	if ev.ExternalURL != nil {
		updates["external_url"] = *ev.ExternalURL
	}
	if ev.ErrorMessage != nil {
		updates["error_message"] = *ev.ErrorMessage
	}
	if status == contract.PublishStatusPublished {
		updates["published_at"] = eventTime(ev)
	}

	if _, err := s.uploadRepo.Update(upload.ID, updates); err != nil {
		return fmt.Errorf("update upload %d: %w", upload.ID, err)
	}
	return nil
}
