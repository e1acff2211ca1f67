package service

import (
	"testing"
	"time"

	"vidshare-go/internal/model"
	"vidshare-go/pkg/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func platform(name string, maxSize int64, maxSeconds *int, formats ...string) *model.SocialPlatform {
	return &model.SocialPlatform{Name: name, MaxVideoSize: maxSize, MaxDurationSeconds: maxSeconds, SupportedFormats: formats, IsActive: true}
}

func TestCheckPublishTarget(t *testing.T) {
	video := &model.Video{ObjectName: "1/2.mp4", FileSize: int64Ptr(100), DurationSeconds: intPtr(60)}

	assert.NoError(t, CheckPublishTarget(video, platform("youtube", 1000, intPtr(600), "mp4")))
	assert.ErrorIs(t, CheckPublishTarget(video, platform("tiny", 99, nil)), ErrPlatformFileTooLarge)
	assert.ErrorIs(t, CheckPublishTarget(video, platform("short", 1000, intPtr(59))), ErrPlatformTooLong)
	assert.ErrorIs(t, CheckPublishTarget(video, platform("insta", 1000, nil, "mov")), ErrPlatformFormat)

	// 未知的大小和时长不做限制
	unknown := &model.Video{ObjectName: "1/3.MP4"}
	assert.NoError(t, CheckPublishTarget(unknown, platform("tiny", 1, intPtr(1), "mp4")))
}

func TestCheckPublishTargetMessageNamesPlatform(t *testing.T) {
	video := &model.Video{FileSize: int64Ptr(100)}
	err := CheckPublishTarget(video, platform("tiktok", 10, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiktok")
}

func TestNormalizePlatformNames(t *testing.T) {
	assert.Equal(t, []string{"youtube", "tiktok"}, normalizePlatformNames([]string{"YouTube", " tiktok", "youtube", ""}))
}

func TestParseScheduleDate(t *testing.T) {
	got, err := parseScheduleDate(contract.None[contract.Timestamp]())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseScheduleDate(contract.Some(contract.Timestamp("2030-05-01T12:00:00+08:00")))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2030, 5, 1, 4, 0, 0, 0, time.UTC), *got)

	_, err = parseScheduleDate(contract.Some(contract.Timestamp("tomorrow")))
	assert.ErrorIs(t, err, ErrInvalidScheduleDate)
}

func TestActivePublishStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "uploading", "published"}, activePublishStatuses)
}
