package record

import (
	"context"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// RecordFilter narrows list queries over finance records.
type RecordFilter struct {
	shared.Filter
	Type       *schema.RecordType
	Status     *RecordStatus
	CategoryID *uuid.UUID
	PartnerID  *uuid.UUID
}

// FinanceRecordRepository defines the interface for finance record persistence
type FinanceRecordRepository interface {
	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FinanceRecord, error)

	// FindByIDForOrg finds a record by ID for a specific organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*FinanceRecord, error)

	// FindAllForOrg returns a page of records for an organization
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter RecordFilter) ([]FinanceRecord, int64, error)

	// Save creates or updates a record without a version check
	Save(ctx context.Context, rec *FinanceRecord) error

	// SaveWithLock updates a record guarded by its version. It returns
	// shared.ErrConcurrencyConflict when the stored version has moved on.
	SaveWithLock(ctx context.Context, rec *FinanceRecord, expectedVersion int) error

	// DeleteForOrg deletes a record for an organization
	DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error

	// ExistsWithFieldName reports whether any record of the organization
	// carries a value under the given field name
	ExistsWithFieldName(ctx context.Context, organizationID uuid.UUID, fieldName string) (bool, error)
}
