package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"testing"
	"time"

	"vidshare-go/internal/config"
	infraKafka "vidshare-go/internal/infra/kafka"
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

// 内存版存储，只实现服务用到的列

type memVideos struct {
	rows   map[int64]*model.Video
	nextID int64

	createErr      error
	updateErr      error
	replaceTagsErr error
	deleteErr      error
}

func newMemVideos(rows ...model.Video) *memVideos {
	m := &memVideos{rows: make(map[int64]*model.Video)}
	for i := range rows {
		v := rows[i]
		m.rows[v.ID] = &v
		m.nextID = max(m.nextID, v.ID)
	}
	return m
}

func (m *memVideos) get(id int64) *model.Video {
	v, ok := m.rows[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}

func (m *memVideos) GetByID(id int64) (*model.Video, error) {
	if v := m.get(id); v != nil {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memVideos) GetByIDAndUser(videoID, userID int64) (*model.Video, error) {
	v := m.get(videoID)
	if v == nil || v.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (m *memVideos) GetByIDs(ids []int64) ([]model.Video, error) {
	var out []model.Video
	for _, id := range ids {
		if v := m.get(id); v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *memVideos) ListByUser(userID int64, skip, limit int) ([]model.Video, int64, error) {
	var all []model.Video
	for _, v := range m.rows {
		if v.UserID == userID {
			all = append(all, *v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	return all[skip:min(skip+limit, len(all))], total, nil
}

func (m *memVideos) Create(video *model.Video) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	video.ID = m.nextID
	cp := *video
	m.rows[video.ID] = &cp
	return nil
}

func (m *memVideos) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	v, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	applyVideoUpdates(v, updates)
	return m.get(id), nil
}

func (m *memVideos) UpdateStatusIf(id int64, from, to string, extra map[string]interface{}) (bool, error) {
	v, ok := m.rows[id]
	if !ok || v.Status != from {
		return false, nil
	}
	v.Status = to
	applyVideoUpdates(v, extra)
	return true, nil
}

func (m *memVideos) ReplaceTags(video *model.Video, tags []model.Tag) error {
	if m.replaceTagsErr != nil {
		return m.replaceTagsErr
	}
	v, ok := m.rows[video.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Tags = slices.Clone(tags)
	return nil
}

func (m *memVideos) Delete(id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func applyVideoUpdates(v *model.Video, updates map[string]interface{}) {
	for k, val := range updates {
		switch k {
		case "status":
			v.Status = val.(string)
		case "object_name":
			v.ObjectName = val.(string)
		case "video_file":
			v.VideoFile = val.(string)
		case "title":
			v.Title = val.(string)
		case "description":
			v.Description = val.(string)
		case "is_public":
			v.IsPublic = val.(bool)
		case "thumbnail":
			s := val.(string)
			v.Thumbnail = &s
		case "transcription":
			s := val.(string)
			v.Transcription = &s
		case "duration_seconds":
			n := val.(int)
			v.DurationSeconds = &n
		case "file_size":
			n := val.(int64)
			v.FileSize = &n
		default:
			panic(fmt.Sprintf("unexpected video column %q", k))
		}
	}
}

type memTasks struct {
	rows   map[int64]*model.VideoProcessingTask
	nextID int64

	// failCreateAt 第 n 次 Create 返回错误（从 1 开始，0 表示不失败）
	failCreateAt int
	creates      int
}

func newMemTasks(rows ...model.VideoProcessingTask) *memTasks {
	m := &memTasks{rows: make(map[int64]*model.VideoProcessingTask)}
	for i := range rows {
		t := rows[i]
		m.rows[t.ID] = &t
		m.nextID = max(m.nextID, t.ID)
	}
	return m
}

func (m *memTasks) Create(task *model.VideoProcessingTask) error {
	m.creates++
	if m.failCreateAt > 0 && m.creates == m.failCreateAt {
		return errors.New("insert task: connection reset")
	}
	m.nextID++
	task.ID = m.nextID
	cp := *task
	m.rows[task.ID] = &cp
	return nil
}

func (m *memTasks) GetByID(id int64) (*model.VideoProcessingTask, error) {
	t, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) ListByVideo(videoID int64) ([]model.VideoProcessingTask, error) {
	var out []model.VideoProcessingTask
	for _, t := range m.rows {
		if t.VideoID == videoID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTasks) LatestByVideoAndType(videoID int64, taskType string) (*model.VideoProcessingTask, error) {
	var latest *model.VideoProcessingTask
	for _, t := range m.rows {
		if t.VideoID == videoID && t.TaskType == taskType && (latest == nil || t.ID > latest.ID) {
			latest = t
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memTasks) Update(id int64, updates map[string]interface{}) (*model.VideoProcessingTask, error) {
	t, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, val := range updates {
		switch k {
		case "status":
			t.Status = val.(string)
		case "error_message":
			s := val.(string)
			t.ErrorMessage = &s
		case "result":
			t.Result = []byte(val.(string))
		case "started_at":
			ts := val.(time.Time)
			t.StartedAt = &ts
		case "completed_at":
			ts := val.(time.Time)
			t.CompletedAt = &ts
		default:
			panic(fmt.Sprintf("unexpected task column %q", k))
		}
	}
	return m.GetByID(id)
}

func (m *memTasks) DeleteByVideoAndStatus(videoID int64, statuses []string) (int64, error) {
	var n int64
	for id, t := range m.rows {
		if t.VideoID == videoID && slices.Contains(statuses, t.Status) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *memTasks) CancelActiveByVideo(videoID int64) (int64, error) {
	var n int64
	for _, t := range m.rows {
		if t.VideoID == videoID && (t.Status == model.TaskStatusPending || t.Status == model.TaskStatusProcessing) {
			t.Status = model.TaskStatusCancelled
			n++
		}
	}
	return n, nil
}

func (m *memTasks) byStatus(status string) []model.VideoProcessingTask {
	var out []model.VideoProcessingTask
	for _, t := range m.rows {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out
}

type memTags struct {
	ensureErr error
}

func (m *memTags) List(skip, limit int) ([]model.Tag, int64, error) {
	return nil, 0, nil
}

func (m *memTags) EnsureByNames(names []string) ([]model.Tag, bool, error) {
	if m.ensureErr != nil {
		return nil, false, m.ensureErr
	}
	tags := make([]model.Tag, len(names))
	for i, n := range names {
		tags[i] = model.Tag{ID: int64(i + 1), Name: n}
	}
	return tags, false, nil
}

type memDownloads struct {
	rows map[int64]*model.YouTubeDownload
}

func newMemDownloads(rows ...model.YouTubeDownload) *memDownloads {
	m := &memDownloads{rows: make(map[int64]*model.YouTubeDownload)}
	for i := range rows {
		d := rows[i]
		m.rows[d.ID] = &d
	}
	return m
}

func (m *memDownloads) GetByID(id int64) (*model.YouTubeDownload, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDownloads) Update(id int64, updates map[string]interface{}) (*model.YouTubeDownload, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	applyDownloadUpdates(d, updates)
	return m.GetByID(id)
}

func (m *memDownloads) UpdateUnlessStatus(id int64, status string, updates map[string]interface{}) (bool, error) {
	d, ok := m.rows[id]
	if !ok || d.Status == status {
		return false, nil
	}
	applyDownloadUpdates(d, updates)
	return true, nil
}

func applyDownloadUpdates(d *model.YouTubeDownload, updates map[string]interface{}) {
	for k, val := range updates {
		switch k {
		case "status":
			d.Status = val.(string)
		case "error_message":
			if val == nil {
				d.ErrorMessage = nil
				continue
			}
			s := val.(string)
			d.ErrorMessage = &s
		case "video_id":
			id := val.(int64)
			d.VideoID = &id
		default:
			panic(fmt.Sprintf("unexpected download column %q", k))
		}
	}
}

type memUploads struct {
	rows map[int64]*model.SocialMediaUpload
}

func (m *memUploads) GetByID(id int64) (*model.SocialMediaUpload, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUploads) Update(id int64, updates map[string]interface{}) (*model.SocialMediaUpload, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, val := range updates {
		switch k {
		case "status":
			u.Status = val.(string)
		case "external_id":
			s := val.(string)
			u.ExternalID = &s
		case "external_url":
			s := val.(string)
			u.ExternalURL = &s
		case "error_message":
			s := val.(string)
			u.ErrorMessage = &s
		case "published_at":
			ts := val.(time.Time)
			u.PublishedAt = &ts
		default:
			panic(fmt.Sprintf("unexpected upload column %q", k))
		}
	}
	return m.GetByID(id)
}

// stubbedInfra 记录对 Kafka / MinIO / Redis 的调用
type stubbedInfra struct {
	jobs        []*infraKafka.Job
	dispatchErr error
	// batchFailed 批量发送时失败的下标
	batchFailed []int

	uploaded  []string
	uploadErr error
	removed   []string

	marked   map[string]bool
	unmarked []string
}

func stubInfra(t *testing.T) *stubbedInfra {
	t.Helper()

	st := &stubbedInfra{marked: make(map[string]bool)}
	origJob, origJobs := dispatchJob, dispatchJobs
	origUpload, origRemove := uploadObject, removeObject
	origMark, origUnmark := markEventOnce, unmarkEvent
	t.Cleanup(func() {
		dispatchJob, dispatchJobs = origJob, origJobs
		uploadObject, removeObject = origUpload, origRemove
		markEventOnce, unmarkEvent = origMark, origUnmark
		config.Set(nil)
	})

	dispatchJob = func(_ context.Context, _ string, job *infraKafka.Job) error {
		if st.dispatchErr != nil {
			return st.dispatchErr
		}
		st.jobs = append(st.jobs, job)
		return nil
	}
	dispatchJobs = func(_ context.Context, _ string, jobs []*infraKafka.Job) ([]int, error) {
		for i, job := range jobs {
			if !slices.Contains(st.batchFailed, i) {
				st.jobs = append(st.jobs, job)
			}
		}
		if len(st.batchFailed) > 0 {
			return st.batchFailed, errors.New("leader not available")
		}
		return nil, nil
	}
	uploadObject = func(_ context.Context, _, objectName string, _ io.Reader, _ int64, _ string) (string, error) {
		if st.uploadErr != nil {
			return "", st.uploadErr
		}
		st.uploaded = append(st.uploaded, objectName)
		return objectName, nil
	}
	removeObject = func(_ context.Context, _, objectName string) error {
		st.removed = append(st.removed, objectName)
		return nil
	}
	markEventOnce = func(_ context.Context, key string, _ time.Duration) (bool, error) {
		if st.marked[key] {
			return false, nil
		}
		st.marked[key] = true
		return true, nil
	}
	unmarkEvent = func(_ context.Context, key string) error {
		delete(st.marked, key)
		st.unmarked = append(st.unmarked, key)
		return nil
	}

	config.Set(&config.Config{
		MinIO:  config.MinIOConfig{Endpoint: "minio:9000", VideoBucket: "videos"},
		Upload: config.UploadConfig{MaxSizeMB: 10, AllowedFormats: []string{"mp4"}},
	})
	return st
}
