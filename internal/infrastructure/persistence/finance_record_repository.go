package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// GormFinanceRecordRepository implements FinanceRecordRepository using GORM
type GormFinanceRecordRepository struct {
	db *gorm.DB
}

// NewGormFinanceRecordRepository creates a new GormFinanceRecordRepository
func NewGormFinanceRecordRepository(db *gorm.DB) *GormFinanceRecordRepository {
	return &GormFinanceRecordRepository{db: db}
}

// FindByID finds a finance record by its ID
func (r *GormFinanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*record.FinanceRecord, error) {
	var rec record.FinanceRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByIDForOrg finds a finance record by ID within an organization
func (r *GormFinanceRecordRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*record.FinanceRecord, error) {
	var rec record.FinanceRecord
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAllForOrg returns a page of finance records for an organization with the total count
func (r *GormFinanceRecordRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter record.RecordFilter) ([]record.FinanceRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&record.FinanceRecord{}).
		Where("organization_id = ?", organizationID)
	query = r.applyRecordFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyOrdering(query, filter.Filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var records []record.FinanceRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Save creates or updates a finance record without a version check
func (r *GormFinanceRecordRepository) Save(ctx context.Context, rec *record.FinanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// SaveWithLock updates a finance record guarded by its version. The stored
// row must still carry expectedVersion or the write is rejected with
// shared.ErrConcurrencyConflict. The version advances with the write.
func (r *GormFinanceRecordRepository) SaveWithLock(ctx context.Context, rec *record.FinanceRecord, expectedVersion int) error {
	rec.Version = expectedVersion + 1

	// Updates, not Save: Save falls back to an upsert INSERT when the
	// guarded UPDATE matches no row, which would silently overwrite the
	// concurrent writer instead of surfacing the conflict.
	result := r.db.WithContext(ctx).
		Model(rec).
		Where("id = ? AND organization_id = ? AND version = ?", rec.ID, rec.OrganizationID, expectedVersion).
		Select("*").
		Updates(rec)
	if result.Error != nil {
		rec.Version = expectedVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		rec.Version = expectedVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForOrg deletes a finance record within an organization
func (r *GormFinanceRecordRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&record.FinanceRecord{}, "organization_id = ? AND id = ?", organizationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsWithFieldName checks if any record of the organization carries a
// value under the given field name. Uses jsonb_exists rather than the ?
// operator, which GORM would consume as a placeholder.
func (r *GormFinanceRecordRepository) ExistsWithFieldName(ctx context.Context, organizationID uuid.UUID, fieldName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&record.FinanceRecord{}).
		Where("organization_id = ? AND jsonb_exists(fields, ?)", organizationID, fieldName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyRecordFilter applies the record-specific predicates without pagination
func (r *GormFinanceRecordRepository) applyRecordFilter(query *gorm.DB, filter record.RecordFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PartnerID != nil {
		query = query.Where("partner_id = ?", *filter.PartnerID)
	}
	return query
}

// applyOrdering applies validated sorting
func (r *GormFinanceRecordRepository) applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, FinanceRecordSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
