package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-leave/internal/messaging/kafka"
	kafkaMock "go-leave/internal/messaging/kafka/mock"
	"go-leave/internal/messaging/kafka/producer"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := f.failFor[string(m.Key)]; ok {
			return err
		}
		f.written = append(f.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		ok := kafka.OutboxEvent{ID: uuid.New(), AggregateID: "balance-1", Topic: "hr.leave.balance.v1", EventType: "BALANCE_CREATED", Payload: []byte(`{}`)}
		bad := kafka.OutboxEvent{ID: uuid.New(), AggregateID: "balance-2", Topic: "hr.leave.balance.v1", RetryCount: 2, Payload: []byte(`{}`)}
		writer.failFor = map[string]error{"balance-2": errors.New("broker down")}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkSent(ctx, ok.ID).Return(nil)
		repo.EXPECT().MarkFailed(ctx, bad.ID, 2, "broker down").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "hr.leave.balance.v1", writer.written[0].Topic)
		assert.Equal(t, []byte("balance-1"), writer.written[0].Key)
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 10).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
	})

	t.Run("negative list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 10).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10)

		assert.Error(t, err)
	})
}
