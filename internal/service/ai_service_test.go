package service

import (
	"testing"
	"time"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider(t *testing.T) {
	p, err := ResolveProvider("")
	assert.NoError(t, err)
	assert.Equal(t, "openai", p)

	p, err = ResolveProvider("groq")
	assert.NoError(t, err)
	assert.Equal(t, "groq", p)

	_, err = ResolveProvider("anthropic")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestBuildTranscriptionStatusNotStarted(t *testing.T) {
	ts := buildTranscriptionStatus(&model.Video{ID: 5}, nil)
	assert.Equal(t, contract.TaskStatusNotStarted, ts.Status)
	assert.False(t, ts.HasTranscription)
	assert.False(t, ts.Transcription.Present())
	assert.False(t, ts.StartedAt.Present())
}

func TestBuildTranscriptionStatusFromTask(t *testing.T) {
	started := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	video := &model.Video{ID: 5, Transcription: strPtr("hello")}
	task := &model.VideoProcessingTask{
		Status:       model.TaskStatusFailed,
		ErrorMessage: strPtr("quota exceeded"),
		StartedAt:    &started,
	}

	ts := buildTranscriptionStatus(video, task)
	assert.True(t, ts.HasTranscription)
	assert.Equal(t, "hello", ts.Transcription.OrElse(""))
	assert.Equal(t, contract.TaskStatusFailed, ts.Status)
	assert.Equal(t, "quota exceeded", ts.ErrorMessage.OrElse(""))
	assert.True(t, ts.StartedAt.Present())
	assert.False(t, ts.CompletedAt.Present())
}

func TestBuildTranscriptionStatusEmptyText(t *testing.T) {
	ts := buildTranscriptionStatus(&model.Video{ID: 1, Transcription: strPtr("")}, nil)
	assert.False(t, ts.HasTranscription)
}

func readyVideos(userID int64, ids ...int64) *memVideos {
	rows := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, model.Video{ID: id, UserID: userID, Status: model.VideoStatusReady, Bucket: "videos"})
	}
	return newMemVideos(rows...)
}

func TestBatchTranscribeDispatchesEveryVideo(t *testing.T) {
	infra := stubInfra(t)
	tasks := newMemTasks()
	svc := &AIService{videoRepo: readyVideos(5, 1, 2, 3), taskRepo: tasks}

	out, err := svc.BatchTranscribe(5, &dto.BatchTranscribeRequest{VideoIDs: []int64{3, 1, 3, 2}})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{out[0].VideoID, out[1].VideoID, out[2].VideoID})
	for _, d := range out {
		assert.Equal(t, defaultAIProvider, d.Provider)
		assert.Equal(t, model.TaskStatusPending, tasks.rows[d.TaskID].Status)
	}
	assert.Len(t, infra.jobs, 3)
}

func TestBatchTranscribeInvalidVideoDispatchesNothing(t *testing.T) {
	infra := stubInfra(t)
	videos := readyVideos(5, 1, 2)
	videos.rows[2].Status = model.VideoStatusProcessing
	tasks := newMemTasks()
	svc := &AIService{videoRepo: videos, taskRepo: tasks}

	_, err := svc.BatchTranscribe(5, &dto.BatchTranscribeRequest{VideoIDs: []int64{1, 2}})
	assert.ErrorIs(t, err, ErrBatchVideosInvalid)
	assert.Empty(t, tasks.rows)
	assert.Empty(t, infra.jobs)

	_, err = svc.BatchTranscribe(6, &dto.BatchTranscribeRequest{VideoIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrBatchVideosInvalid, "other users' videos are rejected")
}

func TestBatchTranscribeTaskCreationFailureDispatchesNothing(t *testing.T) {
	infra := stubInfra(t)
	tasks := newMemTasks()
	tasks.failCreateAt = 2
	svc := &AIService{videoRepo: readyVideos(5, 1, 2, 3), taskRepo: tasks}

	_, err := svc.BatchTranscribe(5, &dto.BatchTranscribeRequest{VideoIDs: []int64{1, 2, 3}})
	require.Error(t, err)
	assert.Empty(t, infra.jobs)
	assert.Empty(t, tasks.byStatus(model.TaskStatusPending), "tasks created before the failure are closed")
	assert.Len(t, tasks.byStatus(model.TaskStatusFailed), 1)
}

func TestBatchTranscribeReportsPartialDispatch(t *testing.T) {
	infra := stubInfra(t)
	infra.batchFailed = []int{1}
	tasks := newMemTasks()
	svc := &AIService{videoRepo: readyVideos(5, 1, 2, 3), taskRepo: tasks}

	out, err := svc.BatchTranscribe(5, &dto.BatchTranscribeRequest{VideoIDs: []int64{1, 2, 3}, Provider: "groq"})
	assert.ErrorIs(t, err, ErrBatchPartiallyDispatched)

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].VideoID)
	assert.Equal(t, int64(3), out[1].VideoID)
	assert.Len(t, infra.jobs, 2)

	failed := tasks.byStatus(model.TaskStatusFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, int64(2), failed[0].VideoID)
}

func TestBatchTranscribeAllJobsLost(t *testing.T) {
	infra := stubInfra(t)
	infra.batchFailed = []int{0, 1}
	tasks := newMemTasks()
	svc := &AIService{videoRepo: readyVideos(5, 1, 2), taskRepo: tasks}

	out, err := svc.BatchTranscribe(5, &dto.BatchTranscribeRequest{VideoIDs: []int64{1, 2}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBatchPartiallyDispatched)
	assert.Nil(t, out)
	assert.Len(t, tasks.byStatus(model.TaskStatusFailed), 2)
}
