package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidshare-go/internal/api/dto"
	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoTranscription    = errors.New("视频需要先完成转写")
	ErrUnknownProvider    = errors.New("不支持的 AI 服务商")
	ErrBatchVideosInvalid = errors.New("部分视频不存在或尚未处理完成")
	// ErrBatchPartiallyDispatched 部分作业发送失败，已派发的任务随错误一起返回
	ErrBatchPartiallyDispatched = errors.New("部分转写任务提交失败")
)

const defaultAIProvider = "openai"

// AIProviders 可用的 AI 服务商
var AIProviders = []dto.AIProvider{
	{Name: "openai", DisplayName: "OpenAI (Whisper)", Services: []string{"transcription", "content_analysis"}, Description: "High-quality transcription and analysis"},
	{Name: "groq", DisplayName: "Groq", Services: []string{"transcription"}, Description: "Fast transcription service"},
	{Name: "gemini", DisplayName: "Google Gemini", Services: []string{"transcription", "content_analysis"}, Description: "Google's multimodal AI"},
}

// ResolveProvider 空值取默认服务商
func ResolveProvider(name string) (string, error) {
	if name == "" {
		return defaultAIProvider, nil
	}
	for _, p := range AIProviders {
		if p.Name == name {
			return name, nil
		}
	}
	return "", ErrUnknownProvider
}

type AIService struct {
	videoRepo videoStore
	taskRepo  taskStore
}

func NewAIService(videoRepo *repository.VideoRepository, taskRepo *repository.ProcessingTaskRepository) *AIService {
	return &AIService{videoRepo: videoRepo, taskRepo: taskRepo}
}

func (s *AIService) owned(videoID, userID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByIDAndUser(videoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// Transcribe 为就绪视频派发转写任务
func (s *AIService) Transcribe(userID int64, req *dto.AIProcessRequest) (*dto.TaskDispatchData, error) {
	provider, err := ResolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	video, err := s.owned(req.VideoID, userID)
	if err != nil {
		return nil, err
	}
	if video.Status != model.VideoStatusReady {
		return nil, ErrVideoNotReady
	}
	return s.dispatch(video, contract.TaskTypeTranscription, infraKafka.JobTranscription, provider)
}

// BatchTranscribe 多个视频一起转写。任一视频不满足条件则全部不派发；
// 作业发送部分失败时返回已派发的任务和 ErrBatchPartiallyDispatched
func (s *AIService) BatchTranscribe(userID int64, req *dto.BatchTranscribeRequest) ([]dto.TaskDispatchData, error) {
	provider, err := ResolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(req.VideoIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		v := &videos[i]
		if v.UserID == userID && v.Status == model.VideoStatusReady {
			byID[v.ID] = v
		}
	}

	ordered := make([]*model.Video, 0, len(req.VideoIDs))
	seen := make(map[int64]struct{}, len(req.VideoIDs))
	for _, id := range req.VideoIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		v, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrBatchVideosInvalid, id)
		}
		ordered = append(ordered, v)
	}

	return s.dispatchBatch(ordered, provider)
}

// dispatchBatch 先为全部视频建好任务再一次性发送；建任务失败时不发送任何作业。
// 发送部分失败时返回成功的部分和 ErrBatchPartiallyDispatched。
func (s *AIService) dispatchBatch(videos []*model.Video, provider string) ([]dto.TaskDispatchData, error) {
	tasks := make([]*model.VideoProcessingTask, 0, len(videos))
	jobs := make([]*infraKafka.Job, 0, len(videos))
	for _, v := range videos {
		job := infraKafka.NewJob(infraKafka.JobTranscription)
		task := &model.VideoProcessingTask{
			VideoID:  v.ID,
			TaskType: string(contract.TaskTypeTranscription),
			Status:   model.TaskStatusPending,
			Provider: provider,
			JobID:    job.EventID,
		}
		if err := s.taskRepo.Create(task); err != nil {
			s.failTasks(tasks, "batch aborted")
			return nil, fmt.Errorf("create transcription task for video %d: %w", v.ID, err)
		}
		job.VideoID = v.ID
		job.TaskID = task.ID
		job.Provider = provider
		job.Bucket = v.Bucket
		job.ObjectName = v.ObjectName
		tasks = append(tasks, task)
		jobs = append(jobs, job)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	failed, err := dispatchJobs(ctx, jobsTopic(), jobs)
	failedSet := make(map[int]struct{}, len(failed))
	for _, i := range failed {
		failedSet[i] = struct{}{}
	}

	out := make([]dto.TaskDispatchData, 0, len(tasks))
	var lost []*model.VideoProcessingTask
	for i, task := range tasks {
		if _, ok := failedSet[i]; ok {
			lost = append(lost, task)
			continue
		}
		out = append(out, dto.TaskDispatchData{
			TaskID:   task.ID,
			VideoID:  task.VideoID,
			TaskType: task.TaskType,
			Provider: provider,
		})
	}
	if len(lost) > 0 {
		logger.Error("Dispatch batch transcription failed",
			zap.Int("failed", len(lost)), zap.Int("total", len(tasks)), zap.Error(err))
		s.failTasks(lost, "dispatch failed")
	}

	switch {
	case len(out) == 0 && len(tasks) > 0:
		return nil, fmt.Errorf("提交 AI 任务失败: %w", err)
	case len(lost) > 0:
		return out, fmt.Errorf("%w: %d/%d", ErrBatchPartiallyDispatched, len(lost), len(tasks))
	}
	return out, nil
}

func (s *AIService) failTasks(tasks []*model.VideoProcessingTask, msg string) {
	for _, task := range tasks {
		if _, err := s.taskRepo.Update(task.ID, map[string]interface{}{
			"status":        model.TaskStatusFailed,
			"error_message": msg,
		}); err != nil {
			logger.Warn("Mark task failed", zap.Int64("task_id", task.ID), zap.Error(err))
		}
	}
}

// Analyze 对已有转写文本的视频派发内容分析
func (s *AIService) Analyze(userID int64, req *dto.AIProcessRequest) (*dto.TaskDispatchData, error) {
	provider, err := ResolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	video, err := s.owned(req.VideoID, userID)
	if err != nil {
		return nil, err
	}
	if video.Transcription == nil || *video.Transcription == "" {
		return nil, ErrNoTranscription
	}
	return s.dispatch(video, contract.TaskTypeContentAnalysis, infraKafka.JobContentAnalysis, provider)
}

func (s *AIService) dispatch(video *model.Video, taskType contract.TaskType, jobType infraKafka.JobType, provider string) (*dto.TaskDispatchData, error) {
	job := infraKafka.NewJob(jobType)
	task := &model.VideoProcessingTask{
		VideoID:  video.ID,
		TaskType: string(taskType),
		Status:   model.TaskStatusPending,
		Provider: provider,
		JobID:    job.EventID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job.VideoID = video.ID
	job.TaskID = task.ID
	job.Provider = provider
	job.Bucket = video.Bucket
	job.ObjectName = video.ObjectName
	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Error("Dispatch AI job failed",
			zap.Int64("video_id", video.ID), zap.String("type", string(jobType)), zap.Error(err))
		msg := "dispatch failed"
		_, _ = s.taskRepo.Update(task.ID, map[string]interface{}{
			"status":        model.TaskStatusFailed,
			"error_message": msg,
		})
		return nil, fmt.Errorf("提交 AI 任务失败: %w", err)
	}

	return &dto.TaskDispatchData{
		TaskID:   task.ID,
		VideoID:  video.ID,
		TaskType: string(taskType),
		Provider: provider,
	}, nil
}

// TranscriptionStatus 最近一次转写任务的状态，没有任务时为 not_started
func (s *AIService) TranscriptionStatus(videoID, userID int64) (*contract.TranscriptionStatus, error) {
	video, err := s.owned(videoID, userID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.LatestByVideoAndType(videoID, string(contract.TaskTypeTranscription))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		task = nil
	}

	status := buildTranscriptionStatus(video, task)
	return &status, nil
}

func buildTranscriptionStatus(video *model.Video, task *model.VideoProcessingTask) contract.TranscriptionStatus {
	ts := contract.TranscriptionStatus{
		VideoID:          video.ID,
		HasTranscription: video.Transcription != nil && *video.Transcription != "",
		Transcription:    contract.FromPtr(video.Transcription),
		Status:           contract.TaskStatusNotStarted,
	}
	if task != nil {
		ts.Status = contract.TaskStatus(task.Status)
		ts.ErrorMessage = contract.FromPtr(task.ErrorMessage)
		ts.StartedAt = optionalTime(task.StartedAt)
		ts.CompletedAt = optionalTime(task.CompletedAt)
	}
	return ts
}
