package service

import (
	infraKafka "vidshare-go/internal/infra/kafka"
	infraMinio "vidshare-go/internal/infra/minio"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/model"
)

// 服务依赖的存储接口，由 repository 包实现

type videoStore interface {
	GetByID(id int64) (*model.Video, error)
	GetByIDAndUser(videoID, userID int64) (*model.Video, error)
	GetByIDs(ids []int64) ([]model.Video, error)
	ListByUser(userID int64, skip, limit int) ([]model.Video, int64, error)
	Create(video *model.Video) error
	Update(id int64, updates map[string]interface{}) (*model.Video, error)
	UpdateStatusIf(id int64, from, to string, extra map[string]interface{}) (bool, error)
	ReplaceTags(video *model.Video, tags []model.Tag) error
	Delete(id int64) error
}

type taskStore interface {
	Create(task *model.VideoProcessingTask) error
	GetByID(id int64) (*model.VideoProcessingTask, error)
	ListByVideo(videoID int64) ([]model.VideoProcessingTask, error)
	LatestByVideoAndType(videoID int64, taskType string) (*model.VideoProcessingTask, error)
	Update(id int64, updates map[string]interface{}) (*model.VideoProcessingTask, error)
	DeleteByVideoAndStatus(videoID int64, statuses []string) (int64, error)
	CancelActiveByVideo(videoID int64) (int64, error)
}

type tagStore interface {
	List(skip, limit int) ([]model.Tag, int64, error)
	EnsureByNames(names []string) ([]model.Tag, bool, error)
}

// downloadStateStore 管线回写下载状态所需的操作
type downloadStateStore interface {
	GetByID(id int64) (*model.YouTubeDownload, error)
	Update(id int64, updates map[string]interface{}) (*model.YouTubeDownload, error)
	UpdateUnlessStatus(id int64, status string, updates map[string]interface{}) (bool, error)
}

type uploadStateStore interface {
	GetByID(id int64) (*model.SocialMediaUpload, error)
	Update(id int64, updates map[string]interface{}) (*model.SocialMediaUpload, error)
}

// 外部系统调用，测试中替换
var (
	dispatchJob   = infraKafka.DispatchJob
	dispatchJobs  = infraKafka.DispatchJobs
	uploadObject  = infraMinio.UploadFile
	removeObject  = infraMinio.RemoveFile
	markEventOnce = infraRedis.MarkOnce
	unmarkEvent   = infraRedis.Unmark
)
