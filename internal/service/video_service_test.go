package service

import (
	"errors"
	"testing"

	"vidshare-go/internal/config"
	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUploadPolicy(t *testing.T) {
	cfg := &config.UploadConfig{MaxSizeMB: 1, AllowedFormats: []string{"mp4", "MOV"}}

	assert.NoError(t, CheckUploadPolicy(cfg, contract.FilePart{Filename: "a.mp4", Size: 10}))
	assert.NoError(t, CheckUploadPolicy(cfg, contract.FilePart{Filename: "a.mov", Size: 1 << 20}))
	assert.ErrorIs(t, CheckUploadPolicy(cfg, contract.FilePart{Filename: "a.exe", Size: 10}), ErrUnsupportedFormat)
	assert.ErrorIs(t, CheckUploadPolicy(cfg, contract.FilePart{Filename: "noext", Size: 10}), ErrUnsupportedFormat)
	assert.ErrorIs(t, CheckUploadPolicy(cfg, contract.FilePart{Filename: "a.mp4", Size: 1<<20 + 1}), ErrFileTooLarge)
}

func TestNormalizeTagNames(t *testing.T) {
	names, err := NormalizeTagNames([]string{" Go ", "go", "Travel", "GO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "travel"}, names)

	names, err = NormalizeTagNames(nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = NormalizeTagNames([]string{"ok", "  "})
	assert.ErrorIs(t, err, ErrInvalidTagName)

	long := make([]rune, maxTagNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = NormalizeTagNames([]string{string(long)})
	assert.ErrorIs(t, err, ErrInvalidTagName)
}

func TestProcessingTaskTypesAreContractValues(t *testing.T) {
	for _, tt := range processingTaskTypes {
		assert.True(t, tt.Valid(), tt)
	}
}

func TestValidateYouTubeURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/shorts/abc",
		"http://m.youtube.com/watch?v=x",
		"https://youtu.be/dQw4w9WgXcQ",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateYouTubeURL(u), u)
	}

	invalid := []string{
		"",
		"youtube.com/watch?v=x",
		"ftp://youtube.com/x",
		"https://vimeo.com/123",
		"https://notyoutube.com/watch?v=x",
		"https://youtube.com.evil.io/watch?v=x",
		"https://youtu.be/",
	}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateYouTubeURL(u), ErrInvalidYouTubeURL, u)
	}
}

func TestOrderByIDs(t *testing.T) {
	videos := []model.Video{{ID: 1}, {ID: 2}, {ID: 3}}
	ordered := orderByIDs(videos, []int64{3, 9, 1})
	require.Len(t, ordered, 2)
	assert.Equal(t, int64(3), ordered[0].ID)
	assert.Equal(t, int64(1), ordered[1].ID)
}

func TestIndexable(t *testing.T) {
	assert.True(t, indexable(&model.Video{IsPublic: true, Status: model.VideoStatusReady}))
	assert.False(t, indexable(&model.Video{IsPublic: false, Status: model.VideoStatusReady}))
	assert.False(t, indexable(&model.Video{IsPublic: true, Status: model.VideoStatusProcessing}))
}

func newUploadService(videos *memVideos, tasks *memTasks, tags *memTags) *VideoService {
	return &VideoService{videoRepo: videos, taskRepo: tasks, tagService: &TagService{tagRepo: tags}}
}

func demoUpload() contract.VideoUpload {
	return contract.VideoUpload{
		Title:     " Demo ",
		VideoFile: contract.BytesFile("clip.mp4", []byte("not really a video")),
	}
}

func TestUploadDispatchesProcessing(t *testing.T) {
	infra := stubInfra(t)
	videos, tasks := newMemVideos(), newMemTasks()
	svc := newUploadService(videos, tasks, &memTags{})

	v, err := svc.Upload(7, demoUpload(), []string{"Go", "go", "travel"})
	require.NoError(t, err)

	assert.Equal(t, contract.VideoStatusProcessing, v.Status)
	assert.Equal(t, "Demo", v.Title)
	assert.Len(t, v.Tags, 2)
	require.Len(t, infra.uploaded, 1)
	assert.Equal(t, videos.rows[v.ID].ObjectName, infra.uploaded[0])

	require.Len(t, infra.jobs, 1)
	job := infra.jobs[0]
	assert.Equal(t, infraKafka.JobProcessVideo, job.Type)
	assert.Len(t, job.TaskIDs, len(processingTaskTypes))
	for _, id := range job.TaskIDs {
		assert.Equal(t, job.EventID, tasks.rows[id].JobID)
	}
}

func TestUploadRollsBackWhenRecordUpdateFails(t *testing.T) {
	infra := stubInfra(t)
	videos, tasks := newMemVideos(), newMemTasks()
	videos.updateErr = errors.New("connection reset")
	svc := newUploadService(videos, tasks, &memTags{})

	_, err := svc.Upload(7, demoUpload(), nil)
	require.Error(t, err)

	assert.Empty(t, videos.rows, "aborted upload leaves no video row")
	require.Len(t, infra.uploaded, 1)
	assert.Equal(t, infra.uploaded, infra.removed, "stored object is removed")
	assert.Empty(t, infra.jobs)
	assert.Empty(t, tasks.rows)
}

func TestUploadRollsBackWhenTaggingFails(t *testing.T) {
	for name, setup := range map[string]func(*memVideos, *memTags){
		"ensure tags": func(_ *memVideos, tags *memTags) {
			tags.ensureErr = errors.New("unique violation")
		},
		"replace tags": func(videos *memVideos, _ *memTags) {
			videos.replaceTagsErr = errors.New("deadlock detected")
		},
	} {
		t.Run(name, func(t *testing.T) {
			infra := stubInfra(t)
			videos, tags := newMemVideos(), &memTags{}
			setup(videos, tags)
			svc := newUploadService(videos, newMemTasks(), tags)

			_, err := svc.Upload(7, demoUpload(), []string{"go"})
			require.Error(t, err)
			assert.Empty(t, videos.rows)
			assert.Len(t, infra.removed, 1)
			assert.Empty(t, infra.jobs)
		})
	}
}

func TestUploadMarksFailedWhenRollbackDeleteFails(t *testing.T) {
	stubInfra(t)
	videos := newMemVideos()
	videos.updateErr = errors.New("connection reset")
	videos.deleteErr = errors.New("connection reset")
	svc := newUploadService(videos, newMemTasks(), &memTags{})

	_, err := svc.Upload(7, demoUpload(), nil)
	require.Error(t, err)

	require.Len(t, videos.rows, 1)
	for _, v := range videos.rows {
		assert.Equal(t, model.VideoStatusFailed, v.Status)
	}
}

func TestUploadStorageFailureDeletesRecord(t *testing.T) {
	infra := stubInfra(t)
	infra.uploadErr = errors.New("bucket missing")
	videos := newMemVideos()
	svc := newUploadService(videos, newMemTasks(), &memTags{})

	_, err := svc.Upload(7, demoUpload(), nil)
	require.Error(t, err)
	assert.Empty(t, videos.rows)
	assert.Empty(t, infra.removed)
}

func TestUploadDispatchFailureMarksVideoFailed(t *testing.T) {
	infra := stubInfra(t)
	infra.dispatchErr = errors.New("broker down")
	videos, tasks := newMemVideos(), newMemTasks()
	svc := newUploadService(videos, tasks, &memTags{})

	_, err := svc.Upload(7, demoUpload(), nil)
	require.Error(t, err)

	require.Len(t, videos.rows, 1)
	for _, v := range videos.rows {
		assert.Equal(t, model.VideoStatusFailed, v.Status)
	}
	assert.Len(t, tasks.byStatus(model.TaskStatusFailed), len(processingTaskTypes))
}
