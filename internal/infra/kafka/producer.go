package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

var errProducerNotInitialized = errors.New("kafka producer not initialized")

// JobType 派发给处理管线的作业类型
type JobType string

const (
	JobProcessVideo    JobType = "process_video"
	JobYouTubeDownload JobType = "youtube_download"
	JobSocialPublish   JobType = "social_publish"
	JobTranscription   JobType = "transcription"
	JobContentAnalysis JobType = "content_analysis"
	JobCancel          JobType = "cancel"
)

// Job 作业消息体
type Job struct {
	EventID      string     `json:"event_id"`
	Type         JobType    `json:"type"`
	VideoID      int64      `json:"video_id,omitempty"`
	TaskID       int64      `json:"task_id,omitempty"`
	TaskIDs      []int64    `json:"task_ids,omitempty"`
	DownloadID   int64      `json:"download_id,omitempty"`
	UploadID     int64      `json:"upload_id,omitempty"`
	Bucket       string     `json:"bucket,omitempty"`
	ObjectName   string     `json:"object_name,omitempty"`
	URL          string     `json:"url,omitempty"`
	Provider     string     `json:"provider,omitempty"`
	Platform     string     `json:"platform,omitempty"`
	ScheduleDate *time.Time `json:"schedule_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewJob 创建带唯一 event_id 的作业
func NewJob(t JobType) *Job {
	return &Job{
		EventID:   uuid.NewString(),
		Type:      t,
		CreatedAt: time.Now().UTC(),
	}
}

// Key 分区键：同一视频/下载/发布记录的消息保持有序
func (j *Job) Key() string {
	switch {
	case j.UploadID != 0:
		return fmt.Sprintf("upload-%d", j.UploadID)
	case j.DownloadID != 0:
		return fmt.Sprintf("download-%d", j.DownloadID)
	default:
		return fmt.Sprintf("video-%d", j.VideoID)
	}
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

func jobMessage(topic string, job *Job) (kafka.Message, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal job: %w", err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(job.Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(job.Type)},
		},
	}, nil
}

// DispatchJob 发送作业到 Kafka
func DispatchJob(ctx context.Context, topic string, job *Job) error {
	if producer == nil {
		return errProducerNotInitialized
	}

	msg, err := jobMessage(topic, job)
	if err != nil {
		return err
	}
	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s job: %w", job.Type, err)
	}

	logger.Info("Job dispatched",
		zap.String("type", string(job.Type)),
		zap.String("event_id", job.EventID),
		zap.String("key", job.Key()),
		zap.String("topic", topic),
	)

	return nil
}

// DispatchJobs 一次写入多个作业，返回发送失败的作业下标
func DispatchJobs(ctx context.Context, topic string, jobs []*Job) ([]int, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	if producer == nil {
		return allIndexes(len(jobs)), errProducerNotInitialized
	}

	msgs := make([]kafka.Message, len(jobs))
	for i, job := range jobs {
		msg, err := jobMessage(topic, job)
		if err != nil {
			return allIndexes(len(jobs)), err
		}
		msgs[i] = msg
	}

	err := producer.WriteMessages(ctx, msgs...)
	failed := failedIndexes(err, len(jobs))
	for i, job := range jobs {
		if !slices.Contains(failed, i) {
			logger.Info("Job dispatched",
				zap.String("type", string(job.Type)),
				zap.String("event_id", job.EventID),
				zap.String("topic", topic),
			)
		}
	}
	if err != nil {
		return failed, fmt.Errorf("failed to send %d of %d jobs: %w", len(failed), len(jobs), err)
	}
	return nil, nil
}

// failedIndexes 从批量写入错误中取出失败的消息下标；非 WriteErrors 视为全部失败
func failedIndexes(err error, n int) []int {
	if err == nil {
		return nil
	}
	var werrs kafka.WriteErrors
	if !errors.As(err, &werrs) || len(werrs) != n {
		return allIndexes(n)
	}
	var failed []int
	for i, e := range werrs {
		if e != nil {
			failed = append(failed, i)
		}
	}
	return failed
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// publishDeadLetter 原样转存消息，附带失败原因
func publishDeadLetter(ctx context.Context, topic string, msg kafka.Message, cause error) error {
	if producer == nil {
		return errProducerNotInitialized
	}
	headers := append(slices.Clone(msg.Headers),
		kafka.Header{Key: "source_topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "error", Value: []byte(cause.Error())},
	)
	return producer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
