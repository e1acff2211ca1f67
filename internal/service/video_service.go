package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidshare-go/internal/api/dto"
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

var (
	ErrVideoNotFound     = errors.New("视频不存在")
	ErrNoFieldsToUpdate  = errors.New("没有需要更新的字段")
	ErrUnsupportedFormat = errors.New("不支持的视频格式")
	ErrFileTooLarge      = errors.New("视频文件超过大小限制")
	ErrVideoNotFailed    = errors.New("只有处理失败的视频可以重试")
	ErrCannotCancel      = errors.New("当前状态无法取消处理")
)

// processingTaskTypes 每次处理尝试创建的任务
var processingTaskTypes = []contract.TaskType{
	contract.TaskTypeThumbnailGeneration,
	contract.TaskTypeTranscription,
	contract.TaskTypeVideoCompression,
}

type VideoService struct {
	videoRepo  videoStore
	taskRepo   taskStore
	tagService *TagService
}

func NewVideoService(videoRepo *repository.VideoRepository, taskRepo *repository.ProcessingTaskRepository, tagService *TagService) *VideoService {
	return &VideoService{videoRepo: videoRepo, taskRepo: taskRepo, tagService: tagService}
}

// CheckUploadPolicy 校验格式与大小
func CheckUploadPolicy(cfg *config.UploadConfig, file contract.FilePart) error {
	if !cfg.Allows(file.Ext()) {
		return ErrUnsupportedFormat
	}
	if file.Size > cfg.MaxSizeBytes() {
		return ErrFileTooLarge
	}
	return nil
}

func jobsTopic() string {
	return config.GetKafka().Topic("jobs")
}

// Upload 上传视频：MinIO 存储 + 创建处理任务 + Kafka 派发
func (s *VideoService) Upload(userID int64, upload contract.VideoUpload, tagNames []string) (*contract.Video, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}
	if err := CheckUploadPolicy(config.GetUpload(), upload.VideoFile); err != nil {
		return nil, err
	}
	names, err := NormalizeTagNames(tagNames)
	if err != nil {
		return nil, err
	}

	minioCfg := config.GetMinIO()
	size := upload.VideoFile.Size
	video := &model.Video{
		UserID:      userID,
		Title:       strings.TrimSpace(upload.Title),
		Description: upload.Description.OrElse(""),
		Bucket:      minioCfg.VideoBucket,
		FileSize:    &size,
		Status:      model.VideoStatusUploading,
		IsPublic:    upload.IsPublic.OrElse(true),
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	ext := upload.VideoFile.Ext()
	objectName := infraMinio.ObjectName(userID, video.ID, ext)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.storeFile(ctx, upload.VideoFile, video.Bucket, objectName, ext); err != nil {
		logger.Error("Upload to MinIO failed, rolling back video record",
			zap.Int64("video_id", video.ID), zap.Error(err))
		_ = s.videoRepo.Delete(video.ID)
		return nil, fmt.Errorf("上传文件失败: %w", err)
	}

	if err := s.attachUpload(video, objectName, infraMinio.PublicURL(minioCfg, video.Bucket, objectName), names); err != nil {
		s.abortUpload(ctx, video, objectName, err)
		return nil, err
	}

	if err := s.dispatchProcessing(ctx, video); err != nil {
		_, _ = s.videoRepo.UpdateStatusIf(video.ID, model.VideoStatusUploading, model.VideoStatusFailed, nil)
		return nil, err
	}
	if _, err := s.videoRepo.UpdateStatusIf(video.ID, model.VideoStatusUploading, model.VideoStatusProcessing, nil); err != nil {
		return nil, err
	}

	return s.load(video.ID)
}

// attachUpload 文件写入后补全对象信息与标签
func (s *VideoService) attachUpload(video *model.Video, objectName, fileURL string, names []string) error {
	if _, err := s.videoRepo.Update(video.ID, map[string]interface{}{
		"object_name": objectName,
		"video_file":  fileURL,
	}); err != nil {
		return fmt.Errorf("record object of video %d: %w", video.ID, err)
	}
	video.ObjectName = objectName

	if len(names) == 0 {
		return nil
	}
	tags, err := s.tagService.Ensure(names)
	if err != nil {
		return err
	}
	if err := s.videoRepo.ReplaceTags(video, tags); err != nil {
		return fmt.Errorf("attach tags to video %d: %w", video.ID, err)
	}
	return nil
}

// abortUpload 回滚已写入 MinIO 的上传：删除对象和记录，记录删不掉时置为 failed
func (s *VideoService) abortUpload(ctx context.Context, video *model.Video, objectName string, cause error) {
	logger.Error("Upload could not be completed, rolling back",
		zap.Int64("video_id", video.ID), zap.String("object", objectName), zap.Error(cause))

	if err := removeObject(ctx, video.Bucket, objectName); err != nil {
		logger.Warn("Remove orphan object failed",
			zap.Int64("video_id", video.ID), zap.String("object", objectName), zap.Error(err))
	}
	if err := s.videoRepo.Delete(video.ID); err != nil {
		logger.Warn("Delete aborted video failed, marking failed", zap.Int64("video_id", video.ID), zap.Error(err))
		_, _ = s.videoRepo.UpdateStatusIf(video.ID, model.VideoStatusUploading, model.VideoStatusFailed, nil)
	}
}

func (s *VideoService) storeFile(ctx context.Context, file contract.FilePart, bucket, objectName, ext string) error {
	reader, err := file.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	_, err = uploadObject(ctx, bucket, objectName, reader, file.Size, infraMinio.ContentType(ext))
	return err
}

// dispatchProcessing 为视频创建一轮处理任务并派发 process_video 作业
func (s *VideoService) dispatchProcessing(ctx context.Context, video *model.Video) error {
	return dispatchProcessing(ctx, s.taskRepo, video)
}

func dispatchProcessing(ctx context.Context, taskRepo taskStore, video *model.Video) error {
	job := infraKafka.NewJob(infraKafka.JobProcessVideo)
	ids := make([]int64, 0, len(processingTaskTypes))
	for _, tt := range processingTaskTypes {
		task := &model.VideoProcessingTask{
			VideoID:  video.ID,
			TaskType: string(tt),
			Status:   model.TaskStatusPending,
			JobID:    job.EventID,
		}
		if err := taskRepo.Create(task); err != nil {
			return fmt.Errorf("create %s task: %w", tt, err)
		}
		ids = append(ids, task.ID)
	}

	job.VideoID = video.ID
	job.TaskIDs = ids
	job.Bucket = video.Bucket
	job.ObjectName = video.ObjectName

	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Error("Dispatch process_video job failed", zap.Int64("video_id", video.ID), zap.Error(err))
		msg := "dispatch failed"
		for _, id := range ids {
			_, _ = taskRepo.Update(id, map[string]interface{}{
				"status":        model.TaskStatusFailed,
				"error_message": msg,
			})
		}
		return fmt.Errorf("提交处理任务失败: %w", err)
	}
	return nil
}

func (s *VideoService) load(videoID int64) (*contract.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	v := toContractVideo(video)
	return &v, nil
}

func (s *VideoService) owned(videoID, userID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByIDAndUser(videoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// Get 视频详情（仅本人）
func (s *VideoService) Get(videoID, userID int64) (*contract.Video, error) {
	if _, err := s.owned(videoID, userID); err != nil {
		return nil, err
	}
	return s.load(videoID)
}

// List 当前用户的视频
func (s *VideoService) List(userID int64, page, pageSize int) ([]contract.Video, int64, error) {
	videos, total, err := s.videoRepo.ListByUser(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toContractVideos(videos), total, nil
}

// Update 更新标题、描述、公开状态和标签
func (s *VideoService) Update(videoID, userID int64, req *dto.VideoUpdateRequest) (*contract.Video, error) {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if len(updates) == 0 && req.TagNames == nil {
		return nil, ErrNoFieldsToUpdate
	}

	if req.TagNames != nil {
		names, err := NormalizeTagNames(req.TagNames)
		if err != nil {
			return nil, err
		}
		tags, err := s.tagService.Ensure(names)
		if err != nil {
			return nil, err
		}
		if err := s.videoRepo.ReplaceTags(video, tags); err != nil {
			return nil, fmt.Errorf("replace tags of video %d: %w", videoID, err)
		}
	}

	if len(updates) > 0 {
		if _, err := s.videoRepo.Update(videoID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVideoNotFound
			}
			return nil, err
		}
	}

	updated, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}
	syncSearchIndex(updated)

	v := toContractVideo(updated)
	return &v, nil
}

// Delete 删除视频及其文件（仅本人）
func (s *VideoService) Delete(videoID, userID int64) error {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if video.ObjectName != "" {
		if err := removeObject(ctx, video.Bucket, video.ObjectName); err != nil {
			logger.Warn("Remove video object failed",
				zap.Int64("video_id", videoID), zap.String("object", video.ObjectName), zap.Error(err))
		}
	}
	removeFromSearchIndex(ctx, videoID)
	return nil
}

// ProcessingStatus 处理进度
func (s *VideoService) ProcessingStatus(videoID, userID int64) (*contract.ProcessingStatus, error) {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByVideo(videoID)
	if err != nil {
		return nil, err
	}
	status := contract.NewProcessingStatus(video.ID, contract.VideoStatus(video.Status), toContractTasks(tasks))
	return &status, nil
}

// Retry 失败视频重新处理，视为一次新的尝试
func (s *VideoService) Retry(videoID, userID int64) (*contract.Video, error) {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return nil, err
	}
	if video.Status != model.VideoStatusFailed {
		return nil, ErrVideoNotFailed
	}

	ok, err := s.videoRepo.UpdateStatusIf(videoID, model.VideoStatusFailed, model.VideoStatusProcessing, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVideoNotFailed
	}

	if _, err := s.taskRepo.DeleteByVideoAndStatus(videoID, []string{model.TaskStatusFailed, model.TaskStatusCancelled}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.dispatchProcessing(ctx, video); err != nil {
		_, _ = s.videoRepo.UpdateStatusIf(videoID, model.VideoStatusProcessing, model.VideoStatusFailed, nil)
		return nil, err
	}

	logger.Info("Video processing restarted", zap.Int64("video_id", videoID))
	return s.load(videoID)
}

// CancelProcessing 取消处理：视频置为 failed，未完成任务置为 cancelled
func (s *VideoService) CancelProcessing(videoID, userID int64) (*contract.Video, error) {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return nil, err
	}
	if video.Status != model.VideoStatusUploading && video.Status != model.VideoStatusProcessing {
		return nil, ErrCannotCancel
	}

	ok, err := s.videoRepo.UpdateStatusIf(videoID, video.Status, model.VideoStatusFailed, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCannotCancel
	}

	if _, err := s.taskRepo.CancelActiveByVideo(videoID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job := infraKafka.NewJob(infraKafka.JobCancel)
	job.VideoID = videoID
	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Warn("Dispatch cancel job failed", zap.Int64("video_id", videoID), zap.Error(err))
	}

	return s.load(videoID)
}
