package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidshare-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventKind 管线回报的事件类型
type EventKind string

const (
	EventVideoStatus    EventKind = "video_status"
	EventTaskStatus     EventKind = "task_status"
	EventDownloadStatus EventKind = "download_status"
	EventPublishStatus  EventKind = "publish_status"
)

// PipelineEvent 处理管线回报的状态事件
type PipelineEvent struct {
	EventID    string    `json:"event_id"`
	Kind       EventKind `json:"kind"`
	Status     string    `json:"status"`
	VideoID    int64     `json:"video_id,omitempty"`
	TaskID     int64     `json:"task_id,omitempty"`
	DownloadID int64     `json:"download_id,omitempty"`
	UploadID   int64     `json:"upload_id,omitempty"`

	// video_status
	Thumbnail       *string `json:"thumbnail,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	FileSize        *int64  `json:"file_size,omitempty"`

	// task_status
	Result json.RawMessage `json:"result,omitempty"`

	// download_status
	Bucket      string `json:"bucket,omitempty"`
	ObjectName  string `json:"object_name,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// publish_status
	ExternalID  *string `json:"external_id,omitempty"`
	ExternalURL *string `json:"external_url,omitempty"`

	ErrorMessage *string    `json:"error_message,omitempty"`
	OccurredAt   *time.Time `json:"occurred_at,omitempty"`
}

var errInvalidEvent = errors.New("invalid pipeline event")

// ParsePipelineEvent 解析并做基本校验
func ParsePipelineEvent(data []byte) (*PipelineEvent, error) {
	var ev PipelineEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidEvent, err)
	}
	if ev.EventID == "" {
		return nil, fmt.Errorf("%w: missing event_id", errInvalidEvent)
	}
	if ev.Status == "" {
		return nil, fmt.Errorf("%w: missing status", errInvalidEvent)
	}

	var target int64
	switch ev.Kind {
	case EventVideoStatus:
		target = ev.VideoID
	case EventTaskStatus:
		target = ev.TaskID
	case EventDownloadStatus:
		target = ev.DownloadID
	case EventPublishStatus:
		target = ev.UploadID
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errInvalidEvent, ev.Kind)
	}
	if target <= 0 {
		return nil, fmt.Errorf("%w: %s event without target id", errInvalidEvent, ev.Kind)
	}
	return &ev, nil
}

// EventHandler 处理单个管线事件
type EventHandler func(ctx context.Context, ev *PipelineEvent) error

const (
	handleAttempts = 5
	retryBackoff   = 500 * time.Millisecond
)

// DeadLetterTopic 重试耗尽的事件转存的 topic
func DeadLetterTopic(topic string) string {
	return topic + ".dlq"
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// eventConsumer 手动提交 offset：处理成功或重试耗尽（已转存死信）后才提交
type eventConsumer struct {
	reader     messageReader
	handler    EventHandler
	attempts   int
	backoff    time.Duration
	deadLetter func(ctx context.Context, msg kafka.Message, cause error) error
}

// StartPipelineEventConsumer 启动管线事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartPipelineEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Pipeline event consumer stopped")
	}()

	logger.Info("Pipeline event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	dlq := DeadLetterTopic(topic)
	c := &eventConsumer{
		reader:   reader,
		handler:  handler,
		attempts: handleAttempts,
		backoff:  retryBackoff,
		deadLetter: func(ctx context.Context, msg kafka.Message, cause error) error {
			return publishDeadLetter(ctx, dlq, msg, cause)
		},
	}
	c.run(ctx)
}

func (c *eventConsumer) run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to fetch kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if !c.process(ctx, msg) {
			return
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			// 未提交的消息会被重投，由事件去重兜底
			logger.Error("Failed to commit kafka offset",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// process 返回 false 表示 ctx 已取消，消息不提交
func (c *eventConsumer) process(ctx context.Context, msg kafka.Message) bool {
	ev, err := ParsePipelineEvent(msg.Value)
	if err != nil {
		logger.Error("Dropping malformed pipeline event",
			zap.Error(err),
			zap.ByteString("value", msg.Value),
		)
		return true
	}

	logger.Info("Received pipeline event",
		zap.String("event_id", ev.EventID),
		zap.String("kind", string(ev.Kind)),
		zap.String("status", ev.Status),
	)

	err = c.handleWithRetry(ctx, ev)
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	logger.Error("Giving up on pipeline event",
		zap.String("event_id", ev.EventID),
		zap.String("kind", string(ev.Kind)),
		zap.Int("attempts", c.attempts),
		zap.Error(err),
	)
	if c.deadLetter != nil {
		if dlErr := c.deadLetter(ctx, msg, err); dlErr != nil {
			logger.Error("Failed to write dead letter",
				zap.String("event_id", ev.EventID),
				zap.ByteString("value", msg.Value),
				zap.Error(dlErr),
			)
		}
	}
	return true
}

// handleWithRetry 指数退避重试，ctx 取消时立即返回
func (c *eventConsumer) handleWithRetry(ctx context.Context, ev *PipelineEvent) error {
	backoff := c.backoff
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = c.handler(ctx, ev); err == nil {
			return nil
		}
		if attempt == c.attempts {
			break
		}
		logger.Warn("Handle pipeline event failed, retrying",
			zap.String("event_id", ev.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
