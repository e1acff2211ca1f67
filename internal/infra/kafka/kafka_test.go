package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobAssignsEventID(t *testing.T) {
	a := NewJob(JobProcessVideo)
	b := NewJob(JobProcessVideo)

	assert.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestJobKey(t *testing.T) {
	job := NewJob(JobProcessVideo)
	job.VideoID = 42
	assert.Equal(t, "video-42", job.Key())

	dl := NewJob(JobYouTubeDownload)
	dl.DownloadID = 3
	assert.Equal(t, "download-3", dl.Key())

	pub := NewJob(JobSocialPublish)
	pub.VideoID = 42
	pub.UploadID = 9
	assert.Equal(t, "upload-9", pub.Key())
}

func TestJobEncodingOmitsUnsetTargets(t *testing.T) {
	job := NewJob(JobTranscription)
	job.VideoID = 1
	job.TaskID = 5
	job.Provider = "openai"

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "transcription", fields["type"])
	assert.Equal(t, "openai", fields["provider"])
	assert.NotContains(t, fields, "download_id")
	assert.NotContains(t, fields, "upload_id")
	assert.NotContains(t, fields, "schedule_date")
}

func TestParsePipelineEvent(t *testing.T) {
	ev, err := ParsePipelineEvent([]byte(`{"event_id":"e1","kind":"video_status","video_id":4,"status":"ready","duration_seconds":65}`))
	require.NoError(t, err)
	assert.Equal(t, EventVideoStatus, ev.Kind)
	require.NotNil(t, ev.DurationSeconds)
	assert.Equal(t, 65, *ev.DurationSeconds)

	ev, err = ParsePipelineEvent([]byte(`{"event_id":"e2","kind":"task_status","task_id":8,"status":"completed","result":{"text":"hi"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi"}`, string(ev.Result))
}

func TestParsePipelineEventRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"no event id":   `{"kind":"video_status","video_id":1,"status":"ready"}`,
		"no status":     `{"event_id":"e","kind":"video_status","video_id":1}`,
		"unknown kind":  `{"event_id":"e","kind":"bogus","video_id":1,"status":"ready"}`,
		"missing video": `{"event_id":"e","kind":"video_status","status":"ready"}`,
		"missing task":  `{"event_id":"e","kind":"task_status","video_id":1,"status":"completed"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePipelineEvent([]byte(raw))
			assert.ErrorIs(t, err, errInvalidEvent)
		})
	}
}
