package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideVideoAction(t *testing.T) {
	cases := []struct {
		cur, next contract.VideoStatus
		want      videoAction
	}{
		{contract.VideoStatusUploading, contract.VideoStatusProcessing, videoActionTransition},
		{contract.VideoStatusUploading, contract.VideoStatusFailed, videoActionTransition},
		{contract.VideoStatusProcessing, contract.VideoStatusReady, videoActionTransition},
		{contract.VideoStatusProcessing, contract.VideoStatusFailed, videoActionTransition},
		{contract.VideoStatusProcessing, contract.VideoStatusProcessing, videoActionMetadata},
		{contract.VideoStatusUploading, contract.VideoStatusReady, videoActionDrop},
		{contract.VideoStatusReady, contract.VideoStatusProcessing, videoActionDrop},
		{contract.VideoStatusReady, contract.VideoStatusReady, videoActionDrop},
		{contract.VideoStatusFailed, contract.VideoStatusReady, videoActionDrop},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, decideVideoAction(c.cur, c.next), "%s -> %s", c.cur, c.next)
	}
}

func TestTranscriptionText(t *testing.T) {
	text, ok := transcriptionText(json.RawMessage(`"plain"`))
	assert.True(t, ok)
	assert.Equal(t, "plain", text)

	text, ok = transcriptionText(json.RawMessage(`{"text":"from text","language":"en"}`))
	assert.True(t, ok)
	assert.Equal(t, "from text", text)

	text, ok = transcriptionText(json.RawMessage(`{"transcription":"alt"}`))
	assert.True(t, ok)
	assert.Equal(t, "alt", text)

	for _, raw := range []string{``, `{}`, `""`, `[1,2]`, `{"text":""}`} {
		_, ok = transcriptionText(json.RawMessage(raw))
		assert.False(t, ok, raw)
	}
}

func TestTaskUpdates(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	started := taskUpdates(&model.VideoProcessingTask{}, &infraKafka.PipelineEvent{Status: "processing"}, now)
	assert.Equal(t, now, started["started_at"])
	assert.NotContains(t, started, "completed_at")

	earlier := now.Add(-time.Minute)
	msg := "boom"
	failed := taskUpdates(
		&model.VideoProcessingTask{StartedAt: &earlier},
		&infraKafka.PipelineEvent{Status: "failed", ErrorMessage: &msg},
		now,
	)
	assert.NotContains(t, failed, "started_at")
	assert.Equal(t, now, failed["completed_at"])
	assert.Equal(t, "boom", failed["error_message"])

	done := taskUpdates(&model.VideoProcessingTask{}, &infraKafka.PipelineEvent{
		Status: "completed",
		Result: json.RawMessage(`{"text":"hi"}`),
	}, now)
	assert.Equal(t, `{"text":"hi"}`, done["result"])
	assert.Equal(t, now, done["started_at"])

	// 开放状态值原样写入
	custom := taskUpdates(&model.VideoProcessingTask{}, &infraKafka.PipelineEvent{Status: "queued_remote"}, now)
	assert.Equal(t, map[string]interface{}{"status": "queued_remote"}, custom)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "视频", truncateRunes("视频标题", 2))
}

func TestEventTime(t *testing.T) {
	at := time.Date(2024, 2, 2, 10, 0, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, at.UTC(), eventTime(&infraKafka.PipelineEvent{OccurredAt: &at}))
	assert.WithinDuration(t, time.Now(), eventTime(&infraKafka.PipelineEvent{}), time.Minute)
}

type pipelineFixture struct {
	svc       *PipelineService
	videos    *memVideos
	tasks     *memTasks
	downloads *memDownloads
	uploads   *memUploads
	infra     *stubbedInfra
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	f := &pipelineFixture{
		videos:    newMemVideos(),
		tasks:     newMemTasks(),
		downloads: newMemDownloads(),
		uploads:   &memUploads{rows: make(map[int64]*model.SocialMediaUpload)},
		infra:     stubInfra(t),
	}
	f.svc = &PipelineService{videoRepo: f.videos, taskRepo: f.tasks, downloadRepo: f.downloads, uploadRepo: f.uploads}
	return f
}

func (f *pipelineFixture) handle(t *testing.T, ev *infraKafka.PipelineEvent) error {
	t.Helper()
	return f.svc.HandleEvent(context.Background(), ev)
}

func videoEvent(id, videoID int64, status string) *infraKafka.PipelineEvent {
	return &infraKafka.PipelineEvent{
		EventID: fmt.Sprintf("video-%d-%d", videoID, id),
		Kind:    infraKafka.EventVideoStatus,
		VideoID: videoID,
		Status:  status,
	}
}

func TestVideoEventIllegalTransitionIsDropped(t *testing.T) {
	f := newPipelineFixture(t)
	f.videos.rows[1] = &model.Video{ID: 1, UserID: 5, Status: model.VideoStatusReady}

	require.NoError(t, f.handle(t, videoEvent(1, 1, "processing")))
	assert.Equal(t, model.VideoStatusReady, f.videos.rows[1].Status)

	require.NoError(t, f.handle(t, videoEvent(2, 1, "uploading")))
	assert.Equal(t, model.VideoStatusReady, f.videos.rows[1].Status)
	assert.Empty(t, f.infra.unmarked, "dropped events stay deduplicated")
}

func TestVideoEventTransitionStoresMetadata(t *testing.T) {
	f := newPipelineFixture(t)
	f.videos.rows[1] = &model.Video{ID: 1, UserID: 5, Status: model.VideoStatusProcessing}

	ev := videoEvent(1, 1, "ready")
	ev.Thumbnail = strPtr("http://minio/thumbs/1.jpg")
	ev.DurationSeconds = intPtr(65)
	require.NoError(t, f.handle(t, ev))

	v := f.videos.rows[1]
	assert.Equal(t, model.VideoStatusReady, v.Status)
	require.NotNil(t, v.Thumbnail)
	assert.Equal(t, "http://minio/thumbs/1.jpg", *v.Thumbnail)
	require.NotNil(t, v.DurationSeconds)
	assert.Equal(t, 65, *v.DurationSeconds)
}

func TestDuplicateEventIsAppliedOnce(t *testing.T) {
	f := newPipelineFixture(t)
	f.videos.rows[1] = &model.Video{ID: 1, UserID: 5, Status: model.VideoStatusProcessing}
	ev := videoEvent(1, 1, "failed")

	require.NoError(t, f.handle(t, ev))
	require.Equal(t, model.VideoStatusFailed, f.videos.rows[1].Status)

	// 人为回退状态，重投同一事件不应再次生效
	f.videos.rows[1].Status = model.VideoStatusProcessing
	require.NoError(t, f.handle(t, ev))
	assert.Equal(t, model.VideoStatusProcessing, f.videos.rows[1].Status)
}

func TestTranscriptionResultIsCopiedToVideo(t *testing.T) {
	f := newPipelineFixture(t)
	f.videos.rows[3] = &model.Video{ID: 3, UserID: 5, Status: model.VideoStatusProcessing}
	f.tasks.rows[10] = &model.VideoProcessingTask{ID: 10, VideoID: 3, TaskType: string(contract.TaskTypeTranscription), Status: model.TaskStatusProcessing}

	require.NoError(t, f.handle(t, &infraKafka.PipelineEvent{
		EventID: "task-10-done",
		Kind:    infraKafka.EventTaskStatus,
		TaskID:  10,
		Status:  "completed",
		Result:  json.RawMessage(`{"text":"hello world","language":"en"}`),
	}))

	task := f.tasks.rows[10]
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
	assert.JSONEq(t, `{"text":"hello world","language":"en"}`, string(task.Result))

	require.NotNil(t, f.videos.rows[3].Transcription)
	assert.Equal(t, "hello world", *f.videos.rows[3].Transcription)
}

func TestCancelledTaskIgnoresLateEvents(t *testing.T) {
	f := newPipelineFixture(t)
	f.tasks.rows[10] = &model.VideoProcessingTask{ID: 10, VideoID: 3, TaskType: string(contract.TaskTypeThumbnailGeneration), Status: model.TaskStatusCancelled}

	require.NoError(t, f.handle(t, &infraKafka.PipelineEvent{EventID: "late", Kind: infraKafka.EventTaskStatus, TaskID: 10, Status: "completed"}))
	assert.Equal(t, model.TaskStatusCancelled, f.tasks.rows[10].Status)
}

func TestFailedEventIsUnmarkedForRedelivery(t *testing.T) {
	f := newPipelineFixture(t)
	f.videos.rows[3] = &model.Video{ID: 3, UserID: 5, Status: model.VideoStatusProcessing}
	f.videos.updateErr = errors.New("connection reset")
	f.tasks.rows[10] = &model.VideoProcessingTask{ID: 10, VideoID: 3, TaskType: string(contract.TaskTypeTranscription), Status: model.TaskStatusProcessing}

	ev := &infraKafka.PipelineEvent{EventID: "task-10", Kind: infraKafka.EventTaskStatus, TaskID: 10, Status: "completed", Result: json.RawMessage(`"hi"`)}
	require.Error(t, f.handle(t, ev))
	assert.Equal(t, []string{eventKeyPrefix + "task-10"}, f.infra.unmarked)

	// 故障恢复后重投可以成功
	f.videos.updateErr = nil
	require.NoError(t, f.handle(t, ev))
	require.NotNil(t, f.videos.rows[3].Transcription)
	assert.Equal(t, "hi", *f.videos.rows[3].Transcription)
}

func downloadCompleted(eventID string, downloadID int64) *infraKafka.PipelineEvent {
	return &infraKafka.PipelineEvent{
		EventID:    eventID,
		Kind:       infraKafka.EventDownloadStatus,
		DownloadID: downloadID,
		Status:     "completed",
		ObjectName: "downloads/5/abc.mp4",
		FileSize:   int64Ptr(4096),
	}
}

func TestDownloadCompletionCreatesAndLinksVideo(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads.rows[2] = &model.YouTubeDownload{ID: 2, UserID: 5, Status: "processing"}

	require.NoError(t, f.handle(t, downloadCompleted("dl-2", 2)))

	require.Len(t, f.videos.rows, 1)
	var video *model.Video
	for _, v := range f.videos.rows {
		video = v
	}
	assert.Equal(t, int64(5), video.UserID)
	assert.Equal(t, defaultDownloadTitle, video.Title)
	assert.Equal(t, "videos", video.Bucket)
	assert.Equal(t, "downloads/5/abc.mp4", video.ObjectName)
	assert.Equal(t, model.VideoStatusProcessing, video.Status)

	dl := f.downloads.rows[2]
	assert.Equal(t, "completed", dl.Status)
	require.NotNil(t, dl.VideoID)
	assert.Equal(t, video.ID, *dl.VideoID)

	require.Len(t, f.infra.jobs, 1)
	assert.Equal(t, video.ID, f.infra.jobs[0].VideoID)
	assert.Len(t, f.tasks.rows, len(processingTaskTypes))
}

// staleDownloads 模拟并发：读到的始终是完成前的快照
type staleDownloads struct {
	*memDownloads
	snapshot model.YouTubeDownload
}

func (s *staleDownloads) GetByID(int64) (*model.YouTubeDownload, error) {
	cp := s.snapshot
	return &cp, nil
}

func TestConcurrentDownloadCompletionCreatesOneVideo(t *testing.T) {
	f := newPipelineFixture(t)
	row := model.YouTubeDownload{ID: 2, UserID: 5, Status: "processing"}
	f.downloads.rows[2] = &row
	f.svc.downloadRepo = &staleDownloads{memDownloads: f.downloads, snapshot: row}

	require.NoError(t, f.handle(t, downloadCompleted("dl-2-a", 2)))
	require.NoError(t, f.handle(t, downloadCompleted("dl-2-b", 2)))

	assert.Len(t, f.videos.rows, 1)
	assert.Len(t, f.infra.jobs, 1)
}

func TestLateFailureDoesNotOverwriteCompletedDownload(t *testing.T) {
	f := newPipelineFixture(t)
	row := model.YouTubeDownload{ID: 2, UserID: 5, Status: "processing"}
	f.downloads.rows[2] = &row
	f.svc.downloadRepo = &staleDownloads{memDownloads: f.downloads, snapshot: row}

	require.NoError(t, f.handle(t, downloadCompleted("dl-2", 2)))
	require.NoError(t, f.handle(t, &infraKafka.PipelineEvent{
		EventID: "dl-2-failed", Kind: infraKafka.EventDownloadStatus, DownloadID: 2,
		Status: "failed", ErrorMessage: strPtr("yt-dlp exited 1"),
	}))

	assert.Equal(t, "completed", f.downloads.rows[2].Status)
	assert.Nil(t, f.downloads.rows[2].ErrorMessage)
}

func TestDownloadCompletionWithoutObjectFails(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads.rows[2] = &model.YouTubeDownload{ID: 2, UserID: 5, Status: "processing"}

	ev := downloadCompleted("dl-2", 2)
	ev.ObjectName = ""
	require.NoError(t, f.handle(t, ev))

	dl := f.downloads.rows[2]
	assert.Equal(t, "failed", dl.Status)
	require.NotNil(t, dl.ErrorMessage)
	assert.Equal(t, "Could not find downloaded file", *dl.ErrorMessage)
	assert.Empty(t, f.videos.rows)
}

func TestDownloadClaimReleasedWhenVideoCreationFails(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads.rows[2] = &model.YouTubeDownload{ID: 2, UserID: 5, Status: "processing"}
	f.videos.createErr = errors.New("connection reset")

	require.Error(t, f.handle(t, downloadCompleted("dl-2", 2)))
	assert.Equal(t, "processing", f.downloads.rows[2].Status)

	f.videos.createErr = nil
	require.NoError(t, f.handle(t, downloadCompleted("dl-2", 2)))
	assert.Equal(t, "completed", f.downloads.rows[2].Status)
	assert.Len(t, f.videos.rows, 1)
}

func TestPublishEventAfterPublishedIsDropped(t *testing.T) {
	f := newPipelineFixture(t)
	f.uploads.rows[4] = &model.SocialMediaUpload{ID: 4, VideoID: 1, Status: model.PublishStatusPublished}

	require.NoError(t, f.handle(t, &infraKafka.PipelineEvent{EventID: "pub-4", Kind: infraKafka.EventPublishStatus, UploadID: 4, Status: "failed"}))
	assert.Equal(t, model.PublishStatusPublished, f.uploads.rows[4].Status)

	f.uploads.rows[5] = &model.SocialMediaUpload{ID: 5, VideoID: 1, Status: model.PublishStatusUploading}
	require.NoError(t, f.handle(t, &infraKafka.PipelineEvent{
		EventID: "pub-5", Kind: infraKafka.EventPublishStatus, UploadID: 5,
		Status: "published", ExternalURL: strPtr("https://youtu.be/xyz"),
	}))
	assert.Equal(t, model.PublishStatusPublished, f.uploads.rows[5].Status)
	assert.NotNil(t, f.uploads.rows[5].PublishedAt)
}
