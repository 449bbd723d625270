package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForOrg finds a category by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Category, error)

	// FindAllForOrg returns all categories for an organization ordered by
	// sort order then name
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]Category, error)

	// FindByApplicability returns the active categories usable by records
	// of the given type
	FindByApplicability(ctx context.Context, organizationID uuid.UUID, recordType schema.RecordType) ([]Category, error)

	// ExistsForOrg reports whether the category belongs to the organization
	ExistsForOrg(ctx context.Context, organizationID, id uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category for an organization
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}
