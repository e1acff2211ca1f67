package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

// videosMapping 视频索引结构，转写文本参与全文检索
const videosMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0,
		"analysis": {
			"analyzer": {
				"folding": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"user_id": {"type": "long"},
			"title": {
				"type": "text",
				"analyzer": "folding",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text", "analyzer": "folding"},
			"transcription": {"type": "text", "analyzer": "folding"},
			"tags": {"type": "keyword"},
			"status": {"type": "keyword"},
			"is_public": {"type": "boolean"},
			"duration_seconds": {"type": "integer"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureVideosIndex 确保视频索引存在
func EnsureVideosIndex(ctx context.Context) error {
	if client == nil {
		return errNotInitialized
	}
	name := VideosIndex()

	resp, err := client.Indices.Exists([]string{name}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", name))
		return nil
	}

	resp, err = client.Indices.Create(
		name,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(videosMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", name))
	return nil
}

// InitIndexes 启动时调用
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureVideosIndex(ctx)
}
