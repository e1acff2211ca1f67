package minio

import (
	"encoding/json"
	"testing"

	"vidshare-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	cfg := &config.MinIOConfig{Endpoint: "127.0.0.1:9000"}
	assert.Equal(t, "http://127.0.0.1:9000/videos/7/42.mp4", PublicURL(cfg, "videos", "7/42.mp4"))

	cfg.UseSSL = true
	assert.Equal(t, "https://127.0.0.1:9000/videos/7/42.mp4", PublicURL(cfg, "videos", "7/42.mp4"))

	cfg.PublicURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/videos/7/42.mp4", PublicURL(cfg, "videos", "7/42.mp4"))
}

func TestObjectNameAndContentType(t *testing.T) {
	assert.Equal(t, "7/42.webm", ObjectName(7, 42, "webm"))
	assert.Equal(t, "7/42", ObjectName(7, 42, ""))

	assert.Equal(t, "video/mp4", ContentType("MP4"))
	assert.Equal(t, "video/quicktime", ContentType("mov"))
	assert.Equal(t, "application/octet-stream", ContentType("bin"))
}

func TestPublicReadPolicyIsValidJSON(t *testing.T) {
	var policy map[string]any
	require.NoError(t, json.Unmarshal([]byte(PublicReadPolicy("videos")), &policy))
	assert.Contains(t, PublicReadPolicy("videos"), "arn:aws:s3:::videos/*")
}
