package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"vidshare-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVideo(id int64) model.Video {
	text := "hello world"
	return model.Video{
		ID:            id,
		UserID:        3,
		Title:         "Sunset",
		Description:   "at the beach",
		Status:        model.VideoStatusReady,
		IsPublic:      true,
		Transcription: &text,
		Tags:          []model.Tag{{ID: 1, Name: "travel"}, {ID: 2, Name: "sea"}},
		CreatedAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewVideoDoc(t *testing.T) {
	v := sampleVideo(7)
	doc := NewVideoDoc(&v)

	assert.Equal(t, int64(7), doc.ID)
	assert.Equal(t, []string{"travel", "sea"}, doc.Tags)
	assert.Equal(t, "hello world", doc.Transcription)
	assert.Equal(t, "2024-05-01T10:00:00Z", doc.CreatedAt)

	v.Tags = nil
	v.Transcription = nil
	doc = NewVideoDoc(&v)
	assert.NotNil(t, doc.Tags)
	assert.Empty(t, doc.Transcription)
}

func TestBuildBulkBody(t *testing.T) {
	body, err := BuildBulkBody("vidshare-videos", []model.Video{sampleVideo(1), sampleVideo(2)})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimRight(body, "\n"), []byte("\n"))
	require.Len(t, lines, 4)

	var meta map[string]map[string]string
	require.NoError(t, json.Unmarshal(lines[2], &meta))
	assert.Equal(t, "vidshare-videos", meta["index"]["_index"])
	assert.Equal(t, "2", meta["index"]["_id"])

	var doc VideoDoc
	require.NoError(t, json.Unmarshal(lines[3], &doc))
	assert.Equal(t, int64(2), doc.ID)
}

func TestBuildSearchQueryFiltersPublicReady(t *testing.T) {
	raw, err := json.Marshal(BuildSearchQuery("beach", 20, 10))
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"from":20`)
	assert.Contains(t, s, `"size":10`)
	assert.Contains(t, s, `{"term":{"is_public":true}}`)
	assert.Contains(t, s, `{"term":{"status":"ready"}}`)
	assert.Contains(t, s, `"query":"beach"`)
}

func TestNormalizeHosts(t *testing.T) {
	assert.Equal(t,
		[]string{"http://es:9200", "https://secure:9200"},
		normalizeHosts([]string{" es:9200 ", "", "https://secure:9200"}),
	)
}

func TestMappingIsValidJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(videosMapping), &m))
}

func TestCallsWithoutClient(t *testing.T) {
	assert.False(t, Enabled())
	_, _, err := SearchVideos(context.Background(), "x", 0, 10)
	assert.ErrorIs(t, err, errNotInitialized)
}
