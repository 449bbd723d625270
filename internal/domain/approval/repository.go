package approval

import (
	"context"

	"github.com/google/uuid"
)

// ApprovalRuleRepository defines the interface for approval rule persistence
type ApprovalRuleRepository interface {
	// FindByID finds a rule by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ApprovalRule, error)

	// FindByIDForOrg finds a rule by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ApprovalRule, error)

	// FindAllForOrg returns all rules for an organization in creation order
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]ApprovalRule, error)

	// FindActiveForOrg returns the active rules for an organization
	FindActiveForOrg(ctx context.Context, organizationID uuid.UUID) ([]ApprovalRule, error)

	// Save creates or updates a rule
	Save(ctx context.Context, rule *ApprovalRule) error

	// Delete deletes a rule for an organization
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}
