package record

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeFinanceRecord = "FinanceRecord"

// Event type constants
const (
	EventTypeRecordCreated   = "FinanceRecordCreated"
	EventTypeRecordSubmitted = "FinanceRecordSubmitted"
	EventTypeRecordApproved  = "FinanceRecordApproved"
	EventTypeRecordDeleted   = "FinanceRecordDeleted"
)

// RecordCreatedEvent is published when a new finance record is created
type RecordCreatedEvent struct {
	shared.BaseDomainEvent
	RecordID   uuid.UUID    `json:"record_id"`
	RecordType string       `json:"record_type"`
	CategoryID uuid.UUID    `json:"category_id"`
	Status     RecordStatus `json:"status"`
}

// NewRecordCreatedEvent creates a new RecordCreatedEvent
func NewRecordCreatedEvent(rec *FinanceRecord) *RecordCreatedEvent {
	return &RecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordCreated, AggregateTypeFinanceRecord, rec.ID, rec.OrganizationID),
		RecordID:        rec.ID,
		RecordType:      rec.Type.String(),
		CategoryID:      rec.CategoryID,
		Status:          rec.Status,
	}
}

// RecordSubmittedEvent is published when a record enters pending_approval
type RecordSubmittedEvent struct {
	shared.BaseDomainEvent
	RecordID          uuid.UUID   `json:"record_id"`
	ApprovalsRequired ApproverSet `json:"approvals_required"`
}

// NewRecordSubmittedEvent creates a new RecordSubmittedEvent
func NewRecordSubmittedEvent(rec *FinanceRecord) *RecordSubmittedEvent {
	return &RecordSubmittedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeRecordSubmitted, AggregateTypeFinanceRecord, rec.ID, rec.OrganizationID),
		RecordID:          rec.ID,
		ApprovalsRequired: rec.ApprovalsRequired,
	}
}

// RecordApprovedEvent is published when a record reaches approved, either
// through collected approvals or auto-approval (nil approver).
type RecordApprovedEvent struct {
	shared.BaseDomainEvent
	RecordID     uuid.UUID  `json:"record_id"`
	ApprovedBy   *uuid.UUID `json:"approved_by,omitempty"`
	AutoApproved bool       `json:"auto_approved"`
}

// NewRecordApprovedEvent creates a new RecordApprovedEvent
func NewRecordApprovedEvent(rec *FinanceRecord, approvedBy *uuid.UUID) *RecordApprovedEvent {
	return &RecordApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordApproved, AggregateTypeFinanceRecord, rec.ID, rec.OrganizationID),
		RecordID:        rec.ID,
		ApprovedBy:      approvedBy,
		AutoApproved:    approvedBy == nil,
	}
}
