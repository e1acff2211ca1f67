package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueReader 依次返回预置消息，取空后取消 ctx 让消费循环退出
type queueReader struct {
	msgs      []kafka.Message
	committed []kafka.Message
	drained   context.CancelFunc
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.drained()
		return kafka.Message{}, context.Canceled
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

const videoReadyEvent = `{"event_id":"e1","kind":"video_status","video_id":4,"status":"ready"}`

func newTestConsumer(msgs []kafka.Message, handler EventHandler) (*eventConsumer, *queueReader, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &queueReader{msgs: msgs, drained: cancel}
	return &eventConsumer{
		reader:   reader,
		handler:  handler,
		attempts: 3,
		backoff:  time.Millisecond,
	}, reader, ctx
}

func TestConsumerRetriesUntilHandlerSucceeds(t *testing.T) {
	calls := 0
	c, reader, ctx := newTestConsumer(
		[]kafka.Message{{Offset: 7, Value: []byte(videoReadyEvent)}},
		func(_ context.Context, ev *PipelineEvent) error {
			calls++
			if calls == 1 {
				return errors.New("database unavailable")
			}
			assert.Equal(t, "e1", ev.EventID)
			return nil
		},
	)

	c.run(ctx)

	assert.Equal(t, 2, calls)
	require.Len(t, reader.committed, 1)
	assert.Equal(t, int64(7), reader.committed[0].Offset)
}

func TestConsumerDeadLettersAfterBoundedRetries(t *testing.T) {
	calls := 0
	c, reader, ctx := newTestConsumer(
		[]kafka.Message{{Offset: 3, Value: []byte(videoReadyEvent)}},
		func(context.Context, *PipelineEvent) error {
			calls++
			return errors.New("still broken")
		},
	)
	var dead []kafka.Message
	c.deadLetter = func(_ context.Context, msg kafka.Message, cause error) error {
		assert.EqualError(t, cause, "still broken")
		dead = append(dead, msg)
		return nil
	}

	c.run(ctx)

	assert.Equal(t, 3, calls)
	require.Len(t, dead, 1)
	assert.Equal(t, int64(3), dead[0].Offset)
	assert.Len(t, reader.committed, 1)
}

func TestConsumerCommitsMalformedWithoutHandling(t *testing.T) {
	called := false
	c, reader, ctx := newTestConsumer(
		[]kafka.Message{{Offset: 1, Value: []byte(`{"kind":"bogus"}`)}},
		func(context.Context, *PipelineEvent) error {
			called = true
			return nil
		},
	)

	c.run(ctx)

	assert.False(t, called)
	assert.Len(t, reader.committed, 1)
}

func TestConsumerDoesNotCommitWhenStoppedMidRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &queueReader{
		msgs:    []kafka.Message{{Offset: 9, Value: []byte(videoReadyEvent)}},
		drained: cancel,
	}
	c := &eventConsumer{
		reader: reader,
		handler: func(context.Context, *PipelineEvent) error {
			cancel()
			return errors.New("interrupted")
		},
		attempts: 5,
		backoff:  time.Hour,
	}

	c.run(ctx)

	assert.Empty(t, reader.committed)
}

func TestFailedIndexes(t *testing.T) {
	assert.Nil(t, failedIndexes(nil, 3))
	assert.Equal(t, []int{0, 1, 2}, failedIndexes(errors.New("broker down"), 3))

	werrs := kafka.WriteErrors{nil, errors.New("leader not available"), nil}
	assert.Equal(t, []int{1}, failedIndexes(werrs, 3))
}

func TestDispatchWithoutProducer(t *testing.T) {
	failed, err := DispatchJobs(context.Background(), "jobs", []*Job{NewJob(JobTranscription), NewJob(JobTranscription)})
	assert.ErrorIs(t, err, errProducerNotInitialized)
	assert.Equal(t, []int{0, 1}, failed)

	assert.ErrorIs(t, DispatchJob(context.Background(), "jobs", NewJob(JobCancel)), errProducerNotInitialized)
}

func TestDeadLetterTopic(t *testing.T) {
	assert.Equal(t, "pipeline.events.dlq", DeadLetterTopic("pipeline.events"))
}
