package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/sweep"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ErrMalformedEvent marks a message that can never be processed.
var ErrMalformedEvent = errors.New("malformed employee lifecycle event")

type LifecycleHandler struct {
	Directory  employee.Directory
	Sweeper    sweep.Service
	Clock      dateutil.Clock
	MaxRetries int
	Backoff    time.Duration
}

// ConsumeEmployeeLifecycle mirrors HR employee records into the directory
// and sweeps the employee so a new hire's balances exist before the first
// request. Malformed messages are committed and dropped; a message that
// keeps failing is dropped after MaxRetries attempts.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler LifecycleHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		err = handler.handleWithRetry(ctx, msg, log)
		if ctx.Err() != nil {
			log.Info("employee lifecycle consumer stopped")
			return
		}
		if err != nil {
			log.Error("employee lifecycle message dropped",
				zap.String("key", string(msg.Key)),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

func (h LifecycleHandler) handleWithRetry(ctx context.Context, msg kafkago.Message, log *zap.Logger) error {
	attempts := h.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		err = h.Handle(ctx, msg.Value)
		if err == nil || errors.Is(err, ErrMalformedEvent) {
			return err
		}
		log.Warn("handle employee lifecycle event failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", attempts),
			zap.Error(err),
		)
		if i < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.Backoff * time.Duration(i)):
			}
		}
	}
	return err
}

// Handle applies one lifecycle event payload.
func (h LifecycleHandler) Handle(ctx context.Context, payload []byte) error {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	id, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return fmt.Errorf("%w: employee_id %q", ErrMalformedEvent, event.EmployeeID)
	}
	hire, err := dateutil.Parse(event.HireDate)
	if err != nil {
		return fmt.Errorf("%w: hire_date %q", ErrMalformedEvent, event.HireDate)
	}

	active := event.IsActive
	if event.EventType == events.EmployeeTerminated {
		active = false
	}

	if err := h.Directory.Sync(ctx, employee.Employee{
		ID:       id,
		TaxID:    event.TaxID,
		FullName: event.FullName,
		HireDate: hire,
		IsActive: active,
	}); err != nil {
		return err
	}
	if !active {
		return nil
	}

	clock := h.Clock
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	_, err = h.Sweeper.SweepEmployee(ctx, id.String(), clock.Today())
	return err
}
