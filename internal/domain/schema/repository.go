package schema

import (
	"context"

	"github.com/google/uuid"
)

// FieldDefinitionRepository defines the interface for field definition persistence.
// It is the registry the validator and evaluator resolve definitions through.
type FieldDefinitionRepository interface {
	// FindByID finds a field definition by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FieldDefinition, error)

	// FindByIDForOrg finds a field definition by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*FieldDefinition, error)

	// FindByName finds a field definition by name for an organization
	FindByName(ctx context.Context, organizationID uuid.UUID, name string) (*FieldDefinition, error)

	// FindAllForOrg returns all field definitions for an organization in
	// creation order
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]FieldDefinition, error)

	// FindApplicable returns the definitions applicable to the given record
	// type (ApplicableTo matches or is "both"), in creation order
	FindApplicable(ctx context.Context, organizationID uuid.UUID, recordType RecordType) ([]FieldDefinition, error)

	// ExistsByName checks if a definition name exists for an organization
	ExistsByName(ctx context.Context, organizationID uuid.UUID, name string) (bool, error)

	// Save creates or updates a field definition
	Save(ctx context.Context, def *FieldDefinition) error

	// Delete deletes a field definition for an organization
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}
