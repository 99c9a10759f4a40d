package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	kafkaMock "go-leave/internal/messaging/kafka/mock"
	"go-leave/internal/notification"
	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOutboxNotifier_BalanceChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	n := notification.NewOutboxNotifier(repo)

	ctx := contextutil.WithRequestID(context.Background(), "req-42")
	event := events.BalanceChangedEvent{
		EventType:       events.BalanceCreated,
		BalanceID:       "b-1",
		EmployeeID:      "e-1",
		AnniversaryYear: 6,
		EntitledDays:    22,
	}

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, row *kafka.OutboxEvent) error {
		assert.Equal(t, events.LeaveBalanceTopic, row.Topic)
		assert.Equal(t, "b-1", row.AggregateID)
		assert.Equal(t, "leave_balance", row.AggregateType)
		assert.Equal(t, events.BalanceCreated, row.EventType)
		assert.Equal(t, "req-42", row.RequestID)
		assert.Equal(t, kafka.OutboxStatusPending, row.Status)

		var decoded events.BalanceChangedEvent
		assert.NoError(t, json.Unmarshal(row.Payload, &decoded))
		assert.Equal(t, 22, decoded.EntitledDays)
		return nil
	})

	n.BalanceChanged(ctx, event)
}

func TestOutboxNotifier_RequestTransitionedSwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	n := notification.NewOutboxNotifier(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		n.RequestTransitioned(context.Background(), events.LeaveRequestTransitionedEvent{
			EventType: events.LeaveRequestTransitioned,
			RequestID: "r-1",
			ToStatus:  "APPROVED",
		})
	})
}
