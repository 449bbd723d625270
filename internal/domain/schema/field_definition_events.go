package schema

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeFieldDefinition = "FieldDefinition"

// Event type constants
const (
	EventTypeFieldDefinitionCreated = "FieldDefinitionCreated"
	EventTypeFieldDefinitionUpdated = "FieldDefinitionUpdated"
	EventTypeFieldDefinitionDeleted = "FieldDefinitionDeleted"
)

// FieldDefinitionCreatedEvent is published when a new field definition is created
type FieldDefinitionCreatedEvent struct {
	shared.BaseDomainEvent
	DefinitionID uuid.UUID     `json:"definition_id"`
	Name         string        `json:"name"`
	FieldType    FieldType     `json:"field_type"`
	ApplicableTo Applicability `json:"applicable_to"`
}

// NewFieldDefinitionCreatedEvent creates a new FieldDefinitionCreatedEvent
func NewFieldDefinitionCreatedEvent(def *FieldDefinition) *FieldDefinitionCreatedEvent {
	return &FieldDefinitionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFieldDefinitionCreated, AggregateTypeFieldDefinition, def.ID, def.OrganizationID),
		DefinitionID:    def.ID,
		Name:            def.Name,
		FieldType:       def.Type,
		ApplicableTo:    def.ApplicableTo,
	}
}

// FieldDefinitionUpdatedEvent is published when a field definition is updated
type FieldDefinitionUpdatedEvent struct {
	shared.BaseDomainEvent
	DefinitionID uuid.UUID     `json:"definition_id"`
	Name         string        `json:"name"`
	ApplicableTo Applicability `json:"applicable_to"`
}

// NewFieldDefinitionUpdatedEvent creates a new FieldDefinitionUpdatedEvent
func NewFieldDefinitionUpdatedEvent(def *FieldDefinition) *FieldDefinitionUpdatedEvent {
	return &FieldDefinitionUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFieldDefinitionUpdated, AggregateTypeFieldDefinition, def.ID, def.OrganizationID),
		DefinitionID:    def.ID,
		Name:            def.Name,
		ApplicableTo:    def.ApplicableTo,
	}
}

// FieldDefinitionDeletedEvent is published when a field definition is deleted
type FieldDefinitionDeletedEvent struct {
	shared.BaseDomainEvent
	DefinitionID uuid.UUID `json:"definition_id"`
	Name         string    `json:"name"`
}

// NewFieldDefinitionDeletedEvent creates a new FieldDefinitionDeletedEvent
func NewFieldDefinitionDeletedEvent(def *FieldDefinition) *FieldDefinitionDeletedEvent {
	return &FieldDefinitionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFieldDefinitionDeleted, AggregateTypeFieldDefinition, def.ID, def.OrganizationID),
		DefinitionID:    def.ID,
		Name:            def.Name,
	}
}
