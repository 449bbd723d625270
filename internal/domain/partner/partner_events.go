package partner

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePartner = "Partner"

// Event type constants
const (
	EventTypePartnerCreated = "PartnerCreated"
	EventTypePartnerUpdated = "PartnerUpdated"
	EventTypePartnerDeleted = "PartnerDeleted"
)

// PartnerCreatedEvent is published when a new partner is created
type PartnerCreatedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID          `json:"partner_id"`
	Kind      record.PartnerKind `json:"kind"`
	Name      string             `json:"name"`
}

// NewPartnerCreatedEvent creates a new PartnerCreatedEvent
func NewPartnerCreatedEvent(partner *Partner) *PartnerCreatedEvent {
	return &PartnerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerCreated, AggregateTypePartner, partner.ID, partner.OrganizationID),
		PartnerID:       partner.ID,
		Kind:            partner.Kind,
		Name:            partner.Name,
	}
}

// PartnerUpdatedEvent is published when a partner is updated
type PartnerUpdatedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
	Name      string    `json:"name"`
}

// NewPartnerUpdatedEvent creates a new PartnerUpdatedEvent
func NewPartnerUpdatedEvent(partner *Partner) *PartnerUpdatedEvent {
	return &PartnerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerUpdated, AggregateTypePartner, partner.ID, partner.OrganizationID),
		PartnerID:       partner.ID,
		Name:            partner.Name,
	}
}

// PartnerDeletedEvent is published when a partner is deleted
type PartnerDeletedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
	Name      string    `json:"name"`
}

// NewPartnerDeletedEvent creates a new PartnerDeletedEvent
func NewPartnerDeletedEvent(partner *Partner) *PartnerDeletedEvent {
	return &PartnerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerDeleted, AggregateTypePartner, partner.ID, partner.OrganizationID),
		PartnerID:       partner.ID,
		Name:            partner.Name,
	}
}
