package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrInvalidTagName = errors.New("标签名长度需在 1 到 50 个字符之间")

const (
	tagCachePrefix = "vidshare:tags:"
	tagCacheTTL    = 10 * time.Minute
	maxTagNameLen  = 50
)

type TagService struct {
	tagRepo tagStore
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

type tagPage struct {
	Results []contract.Tag `json:"results"`
	Count   int64          `json:"count"`
}

func tagCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%s%d:%d", tagCachePrefix, page, pageSize)
}

// NormalizeTagNames 去空白、转小写、去重，保持首次出现的顺序
func NormalizeTagNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || len([]rune(n)) > maxTagNameLen {
			return nil, ErrInvalidTagName
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

// List 全部标签（按名称排序），结果缓存在 Redis
func (s *TagService) List(page, pageSize int) ([]contract.Tag, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := tagCacheKey(page, pageSize)
	var cached tagPage
	err := infraRedis.GetJSON(ctx, key, &cached)
	if err == nil {
		return cached.Results, cached.Count, nil
	}
	if !errors.Is(err, infraRedis.ErrCacheMiss) {
		logger.Warn("Read tag cache failed", zap.String("key", key), zap.Error(err))
	}

	tags, total, err := s.tagRepo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	results := toContractTags(tags)

	if err := infraRedis.SetJSON(ctx, key, tagPage{Results: results, Count: total}, tagCacheTTL); err != nil {
		logger.Warn("Write tag cache failed", zap.String("key", key), zap.Error(err))
	}
	return results, total, nil
}

// Ensure 取出（必要时创建）标签，有新标签时清除列表缓存。names 需已规范化。
func (s *TagService) Ensure(names []string) ([]model.Tag, error) {
	tags, created, err := s.tagRepo.EnsureByNames(names)
	if err != nil {
		return nil, fmt.Errorf("ensure tags: %w", err)
	}
	if created {
		s.invalidate()
	}
	return tags, nil
}

func (s *TagService) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := infraRedis.DeleteByPrefix(ctx, tagCachePrefix); err != nil {
		logger.Warn("Invalidate tag cache failed", zap.Error(err))
	}
}
