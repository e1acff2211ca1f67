package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vidshare-go/internal/api/dto"
	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrInvalidYouTubeURL = errors.New("仅支持 youtube.com 或 youtu.be 的视频链接")

type DownloadService struct {
	downloadRepo *repository.YouTubeDownloadRepository
}

func NewDownloadService(downloadRepo *repository.YouTubeDownloadRepository) *DownloadService {
	return &DownloadService{downloadRepo: downloadRepo}
}

// ValidateYouTubeURL 只接受 http(s) 的 youtube.com（含子域）与 youtu.be
func ValidateYouTubeURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidYouTubeURL
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		if strings.Trim(u.Path, "/") == "" {
			return ErrInvalidYouTubeURL
		}
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
	default:
		return ErrInvalidYouTubeURL
	}
	return nil
}

// Create 创建导入记录并派发下载作业
func (s *DownloadService) Create(userID int64, req *dto.YouTubeDownloadRequest) (*contract.YouTubeDownload, error) {
	if err := ValidateYouTubeURL(req.YouTubeURL); err != nil {
		return nil, err
	}

	download := &model.YouTubeDownload{
		UserID:     userID,
		YouTubeURL: strings.TrimSpace(req.YouTubeURL),
		Status:     string(contract.DownloadStatusPending),
	}
	if err := s.downloadRepo.Create(download); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job := infraKafka.NewJob(infraKafka.JobYouTubeDownload)
	job.DownloadID = download.ID
	job.URL = download.YouTubeURL
	if err := dispatchJob(ctx, jobsTopic(), job); err != nil {
		logger.Error("Dispatch youtube_download job failed", zap.Int64("download_id", download.ID), zap.Error(err))
		msg := "dispatch failed"
		_, _ = s.downloadRepo.Update(download.ID, map[string]interface{}{
			"status":        string(contract.DownloadStatusFailed),
			"error_message": msg,
		})
		return nil, fmt.Errorf("提交下载任务失败: %w", err)
	}

	d := toContractDownload(download)
	return &d, nil
}

// List 当前用户的导入记录
func (s *DownloadService) List(userID int64, page, pageSize int) ([]contract.YouTubeDownload, int64, error) {
	downloads, total, err := s.downloadRepo.ListByUser(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]contract.YouTubeDownload, 0, len(downloads))
	for i := range downloads {
		out = append(out, toContractDownload(&downloads[i]))
	}
	return out, total, nil
}
