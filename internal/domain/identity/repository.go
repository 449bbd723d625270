package identity

import (
	"context"

	"github.com/google/uuid"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindByCode finds an organization by its unique code
	FindByCode(ctx context.Context, code string) (*Organization, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForOrg finds a user by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within an organization
	FindByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*User, error)

	// FindAllForOrg returns all users of an organization
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]User, error)

	// ExistsByEmail reports whether the email is taken within the organization
	ExistsByEmail(ctx context.Context, organizationID uuid.UUID, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
