package service

import (
	"encoding/json"
	"testing"
	"time"

	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   *int
		want string
		ok   bool
	}{
		{nil, "", false},
		{intPtr(-1), "", false},
		{intPtr(0), "00:00:00", true},
		{intPtr(65), "00:01:05", true},
		{intPtr(3725), "01:02:05", true},
		{intPtr(100 * 3600), "100:00:00", true},
	}
	for _, c := range cases {
		got, ok := formatDuration(c.in).Get()
		assert.Equal(t, c.ok, ok)
		assert.Equal(t, c.want, got)
	}
}

func TestToContractVideoRoundTrips(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 123456000, time.FixedZone("CST", 8*3600))
	v := &model.Video{
		ID:              9,
		UserID:          2,
		Title:           "Demo",
		VideoFile:       "http://minio/videos/2/9.mp4",
		DurationSeconds: intPtr(90),
		FileSize:        int64Ptr(2048),
		Status:          model.VideoStatusReady,
		IsPublic:        true,
		Tags:            []model.Tag{{ID: 1, Name: "go", CreatedAt: created}},
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	cv := toContractVideo(v)
	assert.Equal(t, contract.Timestamp("2024-03-01T00:00:00.123456Z"), cv.CreatedAt)
	assert.Equal(t, "00:01:30", cv.Duration.OrElse(""))
	assert.False(t, cv.Thumbnail.Present())
	assert.False(t, cv.Transcription.Present())

	data, err := json.Marshal(cv)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "thumbnail")

	decoded, err := contract.Decode[contract.Video](data)
	require.NoError(t, err)
	assert.Equal(t, cv.ID, decoded.ID)
	assert.True(t, decoded.SameTags(cv))
	assert.Equal(t, int64(2048), decoded.FileSize.OrElse(0))
}

func TestToContractVideoWithoutTagsEncodesEmptyList(t *testing.T) {
	cv := toContractVideo(&model.Video{ID: 1, Status: model.VideoStatusUploading})
	data, err := json.Marshal(cv)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tags":[]`)
}

func TestToContractTaskResult(t *testing.T) {
	task := &model.VideoProcessingTask{
		ID:       4,
		VideoID:  1,
		TaskType: string(contract.TaskTypeTranscription),
		Status:   model.TaskStatusCompleted,
		Result:   []byte(`{"text":"hello"}`),
	}
	ct := toContractTask(task)
	raw, ok := ct.Result.Get()
	require.True(t, ok)
	assert.JSONEq(t, `{"text":"hello"}`, string(raw))

	task.Result = []byte("not json")
	assert.False(t, toContractTask(task).Result.Present())

	task.Result = nil
	assert.False(t, toContractTask(task).Result.Present())
}

func TestToContractUploadUsesRelations(t *testing.T) {
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &model.SocialMediaUpload{
		ID:          3,
		VideoID:     8,
		PlatformID:  2,
		Status:      model.PublishStatusPublished,
		ExternalURL: strPtr("https://youtu.be/abc"),
		PublishedAt: &published,
		Video:       model.Video{ID: 8, Title: "Clip"},
		Platform:    model.SocialPlatform{ID: 2, Name: "youtube"},
	}
	cu := toContractUpload(u)
	assert.Equal(t, "Clip", cu.VideoTitle)
	assert.Equal(t, "youtube", cu.PlatformName)
	assert.Equal(t, contract.PublishStatusPublished, cu.Status)
	assert.Equal(t, contract.Timestamp("2024-01-02T03:04:05.000000Z"), cu.PublishedAt.OrElse(""))
	assert.False(t, cu.ScheduleDate.Present())
}

func TestToContractPlatformFormatsMaxDuration(t *testing.T) {
	p := model.DefaultSocialPlatforms()[1]
	cp := toContractPlatform(&p)
	assert.Equal(t, "instagram", cp.Name)
	assert.Equal(t, "01:00:00", cp.MaxDuration.OrElse(""))
}
