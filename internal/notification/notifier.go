// Package notification turns ledger and request changes into outbox rows.
// Delivery is best effort: a failed write is logged and never fails the
// operation that triggered it.
package notification

import (
	"context"
	"encoding/json"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Notifier interface {
	BalanceChanged(ctx context.Context, event events.BalanceChangedEvent)
	RequestTransitioned(ctx context.Context, event events.LeaveRequestTransitionedEvent)
}

type outboxNotifier struct {
	repo   kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(repo kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxNotifier{repo: repo, logger: l}
}

func (n *outboxNotifier) BalanceChanged(ctx context.Context, event events.BalanceChangedEvent) {
	n.write(ctx, "leave_balance", event.BalanceID, event.EventType, events.LeaveBalanceTopic, event)
}

func (n *outboxNotifier) RequestTransitioned(ctx context.Context, event events.LeaveRequestTransitionedEvent) {
	n.write(ctx, "leave_request", event.RequestID, event.EventType, events.LeaveRequestTopic, event)
}

func (n *outboxNotifier) write(ctx context.Context, aggregateType, aggregateID, eventType, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("encode notification failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	row := &kafka.OutboxEvent{
		ID:            uuid.New(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        kafka.OutboxStatusPending,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		n.logger.Warn("notification dropped",
			zap.String("event_type", eventType),
			zap.String("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}

type nopNotifier struct{}

// Nop discards every notification.
func Nop() Notifier {
	return nopNotifier{}
}

func (nopNotifier) BalanceChanged(context.Context, events.BalanceChangedEvent) {}

func (nopNotifier) RequestTransitioned(context.Context, events.LeaveRequestTransitionedEvent) {}
