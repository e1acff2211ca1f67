package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotReady        = errors.New("视频尚未处理完成")
	ErrPlatformNotFound     = errors.New("平台不存在或未启用")
	ErrPlatformFileTooLarge = errors.New("视频文件超过平台大小限制")
	ErrPlatformTooLong      = errors.New("视频时长超过平台限制")
	ErrPlatformFormat       = errors.New("平台不支持该视频格式")
	ErrAlreadyPublished     = errors.New("该视频已在此平台发布或正在发布")
	ErrInvalidScheduleDate  = errors.New("无效的定时发布时间")
	ErrUploadNotFound       = errors.New("发布记录不存在")
	ErrUploadNotFailed      = errors.New("只有失败的发布可以重试")
	ErrUploadNotCancellable = errors.New("当前状态无法取消发布")
)

const cancelledByUser = "Cancelled by user"

// activePublishStatuses 仍占用平台名额的状态
var activePublishStatuses = func() []string {
	var out []string
	for _, st := range contract.PublishStatuses {
		if st.Active() {
			out = append(out, string(st))
		}
	}
	return out
}()

type SocialService struct {
	platformRepo *repository.SocialPlatformRepository
	uploadRepo   *repository.SocialUploadRepository
	videoRepo    *repository.VideoRepository
}

func NewSocialService(platformRepo *repository.SocialPlatformRepository, uploadRepo *repository.SocialUploadRepository, videoRepo *repository.VideoRepository) *SocialService {
	return &SocialService{platformRepo: platformRepo, uploadRepo: uploadRepo, videoRepo: videoRepo}
}

// Platforms 启用中的平台
func (s *SocialService) Platforms(page, pageSize int) ([]contract.SocialPlatform, int64, error) {
	platforms, total, err := s.platformRepo.ListActive((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]contract.SocialPlatform, 0, len(platforms))
	for i := range platforms {
		out = append(out, toContractPlatform(&platforms[i]))
	}
	return out, total, nil
}

// CheckPublishTarget 视频是否满足平台的大小、时长、格式限制
func CheckPublishTarget(video *model.Video, platform *model.SocialPlatform) error {
	if video.FileSize != nil && platform.MaxVideoSize > 0 && *video.FileSize > platform.MaxVideoSize {
		return fmt.Errorf("%w: %s", ErrPlatformFileTooLarge, platform.Name)
	}
	if video.DurationSeconds != nil && platform.MaxDurationSeconds != nil &&
		*video.DurationSeconds > *platform.MaxDurationSeconds {
		return fmt.Errorf("%w: %s", ErrPlatformTooLong, platform.Name)
	}
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(video.ObjectName)), "."); ext != "" && len(platform.SupportedFormats) > 0 &&
		!slices.Contains(platform.SupportedFormats, ext) {
		return fmt.Errorf("%w: %s", ErrPlatformFormat, platform.Name)
	}
	return nil
}

// normalizePlatformNames 小写去重
func normalizePlatformNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func parseScheduleDate(ts contract.Optional[contract.Timestamp]) (*time.Time, error) {
	raw, ok := ts.Get()
	if !ok {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return nil, ErrInvalidScheduleDate
	}
	t = t.UTC()
	return &t, nil
}

// Upload 发布视频到一个或多个平台，每个平台一条记录
func (s *SocialService) Upload(userID int64, req contract.SocialUploadData) ([]contract.SocialMediaUpload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	schedule, err := parseScheduleDate(req.ScheduleDate)
	if err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByIDAndUser(req.VideoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.Status != model.VideoStatusReady {
		return nil, ErrVideoNotReady
	}

	names := normalizePlatformNames(req.Platforms)
	platforms, err := s.platformRepo.GetActiveByNames(names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*model.SocialPlatform, len(platforms))
	for i := range platforms {
		byName[platforms[i].Name] = &platforms[i]
	}

	targets := make([]*model.SocialPlatform, 0, len(names))
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		p, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlatformNotFound, n)
		}
		if err := CheckPublishTarget(video, p); err != nil {
			return nil, err
		}
		targets = append(targets, p)
		ids = append(ids, p.ID)
	}

	busy, err := s.uploadRepo.ActivePlatformIDs(video.ID, ids, activePublishStatuses)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		for _, p := range targets {
			if slices.Contains(busy, p.ID) {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyPublished, p.Name)
			}
		}
	}

	status := model.PublishStatusPending
	if schedule != nil {
		status = model.PublishStatusScheduled
	}

	uploads := make([]model.SocialMediaUpload, 0, len(targets))
	for _, p := range targets {
		uploads = append(uploads, model.SocialMediaUpload{
			UserID:       userID,
			VideoID:      video.ID,
			PlatformID:   p.ID,
			Caption:      req.Caption.OrElse(""),
			Hashtags:     req.Hashtags.OrElse(""),
			ScheduleDate: schedule,
			Status:       status,
		})
	}
	if err := s.uploadRepo.CreateBatch(uploads); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out := make([]contract.SocialMediaUpload, 0, len(uploads))
	for i := range uploads {
		u := &uploads[i]
		u.Video = *video
		u.Platform = *targets[i]
		if err := s.dispatch(ctx, u); err != nil {
			msg := "dispatch failed"
			u.Status = model.PublishStatusFailed
			u.ErrorMessage = &msg
			_, _ = s.uploadRepo.Update(u.ID, map[string]interface{}{
				"status":        u.Status,
				"error_message": msg,
			})
		}
		out = append(out, toContractUpload(u))
	}
	return out, nil
}

func (s *SocialService) dispatch(ctx context.Context, u *model.SocialMediaUpload) error {
	job := infraKafka.NewJob(infraKafka.JobSocialPublish)
	job.UploadID = u.ID
	job.VideoID = u.VideoID
	job.Platform = u.Platform.Name
	job.Bucket = u.Video.Bucket
	job.ObjectName = u.Video.ObjectName
	job.ScheduleDate = u.ScheduleDate
	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Error("Dispatch social_publish job failed", zap.Int64("upload_id", u.ID), zap.Error(err))
		return err
	}
	return nil
}

// List 当前用户的发布记录
func (s *SocialService) List(userID int64, page, pageSize int) ([]contract.SocialMediaUpload, int64, error) {
	uploads, total, err := s.uploadRepo.ListByUser(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]contract.SocialMediaUpload, 0, len(uploads))
	for i := range uploads {
		out = append(out, toContractUpload(&uploads[i]))
	}
	return out, total, nil
}

func (s *SocialService) owned(uploadID, userID int64) (*model.SocialMediaUpload, error) {
	upload, err := s.uploadRepo.GetByIDAndUser(uploadID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return upload, nil
}

// Get 发布状态
func (s *SocialService) Get(uploadID, userID int64) (*contract.SocialMediaUpload, error) {
	upload, err := s.owned(uploadID, userID)
	if err != nil {
		return nil, err
	}
	u := toContractUpload(upload)
	return &u, nil
}

// Retry 失败的发布重新排队
func (s *SocialService) Retry(uploadID, userID int64) (*contract.SocialMediaUpload, error) {
	upload, err := s.owned(uploadID, userID)
	if err != nil {
		return nil, err
	}
	if upload.Status != model.PublishStatusFailed {
		return nil, ErrUploadNotFailed
	}

	busy, err := s.uploadRepo.ActivePlatformIDs(upload.VideoID, []int64{upload.PlatformID}, activePublishStatuses)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPublished, upload.Platform.Name)
	}

	upload, err = s.uploadRepo.Update(uploadID, map[string]interface{}{
		"status":        model.PublishStatusPending,
		"error_message": nil,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.dispatch(ctx, upload); err != nil {
		msg := "dispatch failed"
		_, _ = s.uploadRepo.Update(uploadID, map[string]interface{}{
			"status":        model.PublishStatusFailed,
			"error_message": msg,
		})
		return nil, fmt.Errorf("提交发布任务失败: %w", err)
	}

	u := toContractUpload(upload)
	return &u, nil
}

// Cancel 取消排队中或上传中的发布
func (s *SocialService) Cancel(uploadID, userID int64) (*contract.SocialMediaUpload, error) {
	upload, err := s.owned(uploadID, userID)
	if err != nil {
		return nil, err
	}
	if upload.Status != model.PublishStatusPending && upload.Status != model.PublishStatusUploading {
		return nil, ErrUploadNotCancellable
	}

	upload, err = s.uploadRepo.Update(uploadID, map[string]interface{}{
		"status":        model.PublishStatusFailed,
		"error_message": cancelledByUser,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job := infraKafka.NewJob(infraKafka.JobCancel)
	job.UploadID = uploadID
	job.VideoID = upload.VideoID
	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Warn("Dispatch cancel job failed", zap.Int64("upload_id", uploadID), zap.Error(err))
	}

	u := toContractUpload(upload)
	return &u, nil
}
