package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaultsAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  name: vidshare-test
database:
  host: db.internal
  port: 5432
jwt:
  secret: ""
`)
	t.Setenv("VIDSHARE_JWT_SECRET", "from-env")
	t.Setenv("VIDSHARE_DATABASE_HOST", "db.override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vidshare-test", cfg.App.Name)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, int64(500), cfg.Upload.MaxSizeMB)
	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, "pipeline.jobs", cfg.Kafka.Topic("jobs"))
	assert.Equal(t, "pipeline.events", cfg.Kafka.Topic("events"))

	assert.Same(t, cfg, Get())
	assert.Equal(t, "from-env", GetJWT().Secret)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	path := writeConfig(t, "app:\n  name: x\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultPath, ResolvePath(""))

	t.Setenv(EnvConfigPath, "/etc/vidshare.yaml")
	assert.Equal(t, "/etc/vidshare.yaml", ResolvePath(""))
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))
}

func TestUploadConfigAllows(t *testing.T) {
	u := UploadConfig{MaxSizeMB: 2, AllowedFormats: []string{"mp4", "MOV"}}

	assert.True(t, u.Allows("mp4"))
	assert.True(t, u.Allows(".MP4"))
	assert.True(t, u.Allows("mov"))
	assert.False(t, u.Allows("exe"))
	assert.False(t, u.Allows(""))
	assert.Equal(t, int64(2*1024*1024), u.MaxSizeBytes())
}

func TestKafkaTopicOverride(t *testing.T) {
	k := KafkaConfig{Topics: map[string]string{"jobs": "custom.jobs"}}
	assert.Equal(t, "custom.jobs", k.Topic("jobs"))
	assert.Equal(t, "pipeline.events", k.Topic("events"))
}
