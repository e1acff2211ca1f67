package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"vidshare-go/internal/model"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoDoc 视频索引文档
type VideoDoc struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"user_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Transcription   string   `json:"transcription,omitempty"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status"`
	IsPublic        bool     `json:"is_public"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// NewVideoDoc 由视频模型构造索引文档
func NewVideoDoc(v *model.Video) *VideoDoc {
	doc := &VideoDoc{
		ID:              v.ID,
		UserID:          v.UserID,
		Title:           v.Title,
		Description:     v.Description,
		Tags:            make([]string, 0, len(v.Tags)),
		Status:          v.Status,
		IsPublic:        v.IsPublic,
		DurationSeconds: v.DurationSeconds,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.Transcription != nil {
		doc.Transcription = *v.Transcription
	}
	for _, t := range v.Tags {
		doc.Tags = append(doc.Tags, t.Name)
	}
	return doc
}

// SyncVideo 同步单个视频
func SyncVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(NewVideoDoc(v))
	if err != nil {
		return err
	}

	resp, err := indexDoc(ctx, VideosIndex(), strconv.FormatInt(v.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 删除视频文档，不存在视为成功
func DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := deleteDoc(ctx, VideosIndex(), strconv.FormatInt(videoID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BuildBulkBody 生成 bulk index 请求体（NDJSON）
func BuildBulkBody(index string, videos []model.Video) ([]byte, error) {
	var buf bytes.Buffer
	for i := range videos {
		meta := map[string]map[string]string{
			"index": {"_index": index, "_id": strconv.FormatInt(videos[i].ID, 10)},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		docLine, err := json.Marshal(NewVideoDoc(&videos[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// BulkSyncVideos 批量同步
func BulkSyncVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	if len(videos) == 0 {
		return 0, 0, nil
	}

	body, err := BuildBulkBody(VideosIndex(), videos)
	if err != nil {
		return 0, len(videos), err
	}

	resp, err := bulk(ctx, bytes.NewReader(body))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// BuildSearchQuery 公开且就绪视频的全文检索
func BuildSearchQuery(keyword string, from, size int) map[string]any {
	return map[string]any{
		"from": from,
		"size": size,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  keyword,
							"fields": []string{"title^3", "tags^2", "description", "transcription"},
						},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_public": true}},
					map[string]any{"term": map[string]any{"status": model.VideoStatusReady}},
				},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
	}
}

// SearchVideos 返回命中的视频 ID（按相关度）及总数
func SearchVideos(ctx context.Context, keyword string, from, size int) ([]int64, int64, error) {
	if client == nil {
		return nil, 0, errNotInitialized
	}
	body, err := json.Marshal(BuildSearchQuery(keyword, from, size))
	if err != nil {
		return nil, 0, err
	}

	resp, err := search(ctx, VideosIndex(), bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, result.Hits.Total.Value, nil
}
