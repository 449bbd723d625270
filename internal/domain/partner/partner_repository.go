package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
)

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByID finds a partner by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindByIDForOrg finds a partner by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Partner, error)

	// FindAllForOrg returns a page of partners for an organization,
	// optionally narrowed to one kind
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, kind *record.PartnerKind) ([]Partner, error)

	// KindOf returns the partner's kind, or shared.ErrNotFound when the
	// partner does not belong to the organization
	KindOf(ctx context.Context, organizationID, id uuid.UUID) (record.PartnerKind, error)

	// Save creates or updates a partner
	Save(ctx context.Context, partner *Partner) error

	// Delete deletes a partner for an organization
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}
