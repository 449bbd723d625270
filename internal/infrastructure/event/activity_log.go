package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// ActivityLogHandler writes an activity line for finance record lifecycle
// events. It stands in for downstream consumers such as notification or
// reporting pipelines.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns the record lifecycle event types
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		record.EventTypeRecordCreated,
		record.EventTypeRecordSubmitted,
		record.EventTypeRecordApproved,
	}
}

// Handle logs the lifecycle event
func (h *ActivityLogHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("record_id", evt.AggregateID().String()),
		zap.String("organization_id", evt.OrganizationID().String()),
	}
	switch e := evt.(type) {
	case *record.RecordSubmittedEvent:
		fields = append(fields, zap.Int("approvals_required", len(e.ApprovalsRequired)))
	case *record.RecordApprovedEvent:
		fields = append(fields, zap.Bool("auto_approved", e.AutoApproved))
		if e.ApprovedBy != nil {
			fields = append(fields, zap.String("approved_by", e.ApprovedBy.String()))
		}
	}
	h.logger.Info("finance record activity", fields...)
	return nil
}
