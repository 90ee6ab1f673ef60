package consumer

import (
	"context"
	"encoding/json"
	"time"

	"plugohris/internal/accrual"
	"plugohris/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAccrualRequested runs the balance accrual engine whenever an
// accrual-trigger event arrives. A bad payload is committed and
// skipped; an engine failure leaves the message uncommitted so it is
// retried.
func ConsumeAccrualRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	accrualService accrual.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.accrual_requested")
	log.Info("accrual trigger consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("accrual trigger consumer stopped")
				return
			}
			log.Error("fetch accrual trigger message failed", zap.Error(err))
			continue
		}

		var event events.AccrualRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode accrual_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		asOf, err := time.Parse("2006-01-02", event.AsOfDate)
		if err != nil {
			log.Error("accrual_requested event has invalid as_of_date",
				zap.String("as_of_date", event.AsOfDate),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		result, err := accrualService.Recalculate(ctx, asOf)
		if err != nil {
			log.Error("balance recalculation failed",
				zap.String("as_of_date", event.AsOfDate),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit accrual trigger message failed", zap.Error(err))
			continue
		}

		log.Info("balance recalculation completed from event",
			zap.String("as_of_date", event.AsOfDate),
			zap.Int("updated_count", result.UpdatedCount),
		)
	}
}
