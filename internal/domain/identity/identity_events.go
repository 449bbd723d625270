package identity

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeOrganization = "Organization"
	AggregateTypeUser         = "User"
)

// Event type constants
const (
	EventTypeOrganizationCreated = "OrganizationCreated"
	EventTypeOrganizationUpdated = "OrganizationUpdated"
	EventTypeUserCreated         = "UserCreated"
)

// OrganizationCreatedEvent is published when a new organization is created
type OrganizationCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewOrganizationCreatedEvent creates a new OrganizationCreatedEvent
func NewOrganizationCreatedEvent(org *Organization) *OrganizationCreatedEvent {
	return &OrganizationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationCreated, AggregateTypeOrganization, org.ID, org.ID),
		Code:            org.Code,
		Name:            org.Name,
	}
}

// OrganizationUpdatedEvent is published when an organization is updated
type OrganizationUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewOrganizationUpdatedEvent creates a new OrganizationUpdatedEvent
func NewOrganizationUpdatedEvent(org *Organization) *OrganizationUpdatedEvent {
	return &OrganizationUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationUpdated, AggregateTypeOrganization, org.ID, org.ID),
		Name:            org.Name,
	}
}

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.OrganizationID),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}
