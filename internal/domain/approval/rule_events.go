package approval

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeApprovalRule = "ApprovalRule"

// Event type constants
const (
	EventTypeApprovalRuleCreated = "ApprovalRuleCreated"
	EventTypeApprovalRuleUpdated = "ApprovalRuleUpdated"
	EventTypeApprovalRuleDeleted = "ApprovalRuleDeleted"
)

// ApprovalRuleCreatedEvent is published when a new approval rule is created
type ApprovalRuleCreatedEvent struct {
	shared.BaseDomainEvent
	RuleID    uuid.UUID `json:"rule_id"`
	Name      string    `json:"name"`
	Approvers int       `json:"approvers"`
}

// NewApprovalRuleCreatedEvent creates a new ApprovalRuleCreatedEvent
func NewApprovalRuleCreatedEvent(rule *ApprovalRule) *ApprovalRuleCreatedEvent {
	return &ApprovalRuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalRuleCreated, AggregateTypeApprovalRule, rule.ID, rule.OrganizationID),
		RuleID:          rule.ID,
		Name:            rule.Name,
		Approvers:       len(rule.RequiredApprovers),
	}
}

// ApprovalRuleUpdatedEvent is published when an approval rule is updated
type ApprovalRuleUpdatedEvent struct {
	shared.BaseDomainEvent
	RuleID uuid.UUID `json:"rule_id"`
	Name   string    `json:"name"`
}

// NewApprovalRuleUpdatedEvent creates a new ApprovalRuleUpdatedEvent
func NewApprovalRuleUpdatedEvent(rule *ApprovalRule) *ApprovalRuleUpdatedEvent {
	return &ApprovalRuleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalRuleUpdated, AggregateTypeApprovalRule, rule.ID, rule.OrganizationID),
		RuleID:          rule.ID,
		Name:            rule.Name,
	}
}

// ApprovalRuleDeletedEvent is published when an approval rule is deleted
type ApprovalRuleDeletedEvent struct {
	shared.BaseDomainEvent
	RuleID uuid.UUID `json:"rule_id"`
	Name   string    `json:"name"`
}

// NewApprovalRuleDeletedEvent creates a new ApprovalRuleDeletedEvent
func NewApprovalRuleDeletedEvent(rule *ApprovalRule) *ApprovalRuleDeletedEvent {
	return &ApprovalRuleDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalRuleDeleted, AggregateTypeApprovalRule, rule.ID, rule.OrganizationID),
		RuleID:          rule.ID,
		Name:            rule.Name,
	}
}
