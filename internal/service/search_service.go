package service

import (
	"context"
	"strings"
	"time"

	infraES "vidshare-go/internal/infra/elasticsearch"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

const bulkSyncBatch = 500

type SearchService struct {
	videoRepo *repository.VideoRepository
}

func NewSearchService(videoRepo *repository.VideoRepository) *SearchService {
	return &SearchService{videoRepo: videoRepo}
}

// SearchVideos 搜索公开且就绪的视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(q string, page, pageSize int) ([]contract.Video, int64, error) {
	q = strings.TrimSpace(q)
	skip := (page - 1) * pageSize

	if q != "" && infraES.Enabled() {
		videos, total, err := s.searchFromES(q, skip, pageSize)
		if err == nil {
			return videos, total, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}

	videos, total, err := s.videoRepo.SearchPublic(q, skip, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toContractVideos(videos), total, nil
}

func (s *SearchService) searchFromES(q string, skip, size int) ([]contract.Video, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, total, err := infraES.SearchVideos(ctx, q, skip, size)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []contract.Video{}, total, nil
	}

	videos, err := s.videoRepo.GetByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	return toContractVideos(orderByIDs(videos, ids)), total, nil
}

// orderByIDs 按搜索引擎返回的顺序排列，丢弃数据库中已不存在的记录
func orderByIDs(videos []model.Video, ids []int64) []model.Video {
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, *v)
		}
	}
	return ordered
}

// SyncVideosToES 全量同步公开就绪的视频
func (s *SearchService) SyncVideosToES() (success, failed int, err error) {
	if !infraES.Enabled() {
		return 0, 0, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for skip := 0; ; skip += bulkSyncBatch {
		videos, err := s.videoRepo.ListPublicReady(skip, bulkSyncBatch)
		if err != nil {
			return success, failed, err
		}
		if len(videos) == 0 {
			break
		}
		ok, bad, err := infraES.BulkSyncVideos(ctx, videos)
		success += ok
		failed += bad
		if err != nil {
			return success, failed, err
		}
		if len(videos) < bulkSyncBatch {
			break
		}
	}
	return success, failed, nil
}

// indexable 只有公开且就绪的视频出现在搜索结果中
func indexable(v *model.Video) bool {
	return v.IsPublic && v.Status == model.VideoStatusReady
}

// syncSearchIndex 尽力同步，失败只记录日志
func syncSearchIndex(v *model.Video) {
	if !infraES.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !indexable(v) {
		removeFromSearchIndex(ctx, v.ID)
		return
	}
	if err := infraES.SyncVideo(ctx, v); err != nil {
		logger.Warn("Sync video to ES failed", zap.Int64("video_id", v.ID), zap.Error(err))
	}
}

func removeFromSearchIndex(ctx context.Context, videoID int64) {
	if !infraES.Enabled() {
		return
	}
	if err := infraES.DeleteVideo(ctx, videoID); err != nil {
		logger.Warn("Delete video from ES failed", zap.Int64("video_id", videoID), zap.Error(err))
	}
}
