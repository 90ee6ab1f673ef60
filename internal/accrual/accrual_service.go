package accrual

import (
	"context"
	"encoding/json"
	"time"

	accrualerrors "plugohris/internal/accrual/errors"
	"plugohris/internal/employee"
	"plugohris/internal/events"
	"plugohris/internal/messaging/kafka"
	"plugohris/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// Average Gregorian month length in days; tenure is deliberately
	// approximate rather than calendar-exact.
	avgMonthDays = 30.44

	// Joiners on or before this day of the month accrue for the month
	// they joined in.
	accrualCutoffDay = 16
)

var (
	ratePermanent = decimal.NewFromFloat(1.25)
	rateContract  = decimal.NewFromInt(1)
)

//go:generate mockgen -source=accrual_service.go -destination=mock/accrual_service_mock.go -package=mock
type Service interface {
	Recalculate(ctx context.Context, asOf time.Time) (RecalculationResult, error)
	ScheduleRecalculation(ctx context.Context, asOf time.Time, requestedBy string) error
}

type service struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("accrual.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("accrual.service")
	}
	return &service{repo: repo, outbox: outbox, logger: l}
}

// Recalculate overwrites each active employee's entitled balance from
// tenure. Rerunning with the same asOf date and unchanged inputs writes
// nothing. A failure on one employee is logged and skipped so the rest
// of the run still completes.
func (s *service) Recalculate(ctx context.Context, asOf time.Time) (RecalculationResult, error) {
	employees, err := s.repo.ListActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("list active employees failed", zap.Error(err))
		return RecalculationResult{}, err
	}

	result := RecalculationResult{
		AsOfDate: asOf.Format("2006-01-02"),
		Deltas:   []EmployeeDelta{},
	}

	for _, e := range employees {
		entitled := EntitledBalance(e.StartDate, e.EmploymentType, asOf)
		if entitled.Equal(e.LeaveBalance) {
			continue
		}

		if err := s.repo.UpdateBalance(ctx, e.ID.String(), entitled); err != nil {
			result.SkippedCount++
			s.logger.Error("balance update failed, skipping employee",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			continue
		}

		result.UpdatedCount++
		result.Deltas = append(result.Deltas, EmployeeDelta{
			EmployeeID: e.ID.String(),
			Before:     e.LeaveBalance.String(),
			After:      entitled.String(),
		})
	}

	s.logger.Info("balance recalculation finished",
		zap.String("as_of_date", result.AsOfDate),
		zap.Int("updated_count", result.UpdatedCount),
		zap.Int("skipped_count", result.SkippedCount),
	)
	return result, nil
}

// ScheduleRecalculation enqueues an accrual trigger through the outbox
// so the consumer runs it off the request path.
func (s *service) ScheduleRecalculation(ctx context.Context, asOf time.Time, requestedBy string) error {
	if s.outbox == nil {
		return accrualerrors.ErrSchedulingUnavailable
	}

	event := events.AccrualRequestedEvent{
		EventType:   "accrual_requested",
		AsOfDate:    asOf.Format("2006-01-02"),
		RequestedBy: requestedBy,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "accrual_run",
		AggregateID:   event.AsOfDate,
		EventType:     event.EventType,
		Topic:         events.AccrualRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// EntitledBalance computes the tenure-based entitlement. Tenure is
// floor(days / 30.44) months; an employee who joined inside the asOf
// month counts one month only when they joined on or before the 16th.
func EntitledBalance(startDate time.Time, employmentType string, asOf time.Time) decimal.Decimal {
	months := monthsJoined(startDate, asOf)
	if months <= 0 {
		return decimal.Zero
	}

	rate := rateContract
	if employmentType == employee.TypePermanent {
		rate = ratePermanent
	}
	return decimal.NewFromInt(int64(months)).Mul(rate)
}

func monthsJoined(startDate time.Time, asOf time.Time) int {
	if startDate.After(asOf) {
		return 0
	}
	if startDate.Year() == asOf.Year() && startDate.Month() == asOf.Month() {
		if startDate.Day() <= accrualCutoffDay {
			return 1
		}
		return 0
	}
	days := asOf.Sub(startDate).Hours() / 24
	return int(days / avgMonthDays)
}
