package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// GormFieldDefinitionRepository implements FieldDefinitionRepository using GORM
type GormFieldDefinitionRepository struct {
	db *gorm.DB
}

// NewGormFieldDefinitionRepository creates a new GormFieldDefinitionRepository
func NewGormFieldDefinitionRepository(db *gorm.DB) *GormFieldDefinitionRepository {
	return &GormFieldDefinitionRepository{db: db}
}

// FindByID finds a field definition by its ID
func (r *GormFieldDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*schema.FieldDefinition, error) {
	var def schema.FieldDefinition
	if err := r.db.WithContext(ctx).First(&def, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

// FindByIDForOrg finds a field definition by ID within an organization
func (r *GormFieldDefinitionRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*schema.FieldDefinition, error) {
	var def schema.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&def).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

// FindByName finds a field definition by name within an organization
func (r *GormFieldDefinitionRepository) FindByName(ctx context.Context, organizationID uuid.UUID, name string) (*schema.FieldDefinition, error) {
	var def schema.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organizationID, name).
		First(&def).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

// FindAllForOrg finds all field definitions for an organization in creation order
func (r *GormFieldDefinitionRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]schema.FieldDefinition, error) {
	var defs []schema.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// FindApplicable finds the definitions applicable to the given record type in creation order
func (r *GormFieldDefinitionRepository) FindApplicable(ctx context.Context, organizationID uuid.UUID, recordType schema.RecordType) ([]schema.FieldDefinition, error) {
	var defs []schema.FieldDefinition
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND applicable_to IN ?",
			organizationID, []string{string(recordType), string(schema.ApplicableToBoth)}).
		Order("created_at ASC").
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// ExistsByName checks if a definition name exists within an organization
func (r *GormFieldDefinitionRepository) ExistsByName(ctx context.Context, organizationID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&schema.FieldDefinition{}).
		Where("organization_id = ? AND name = ?", organizationID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a field definition
func (r *GormFieldDefinitionRepository) Save(ctx context.Context, def *schema.FieldDefinition) error {
	return r.db.WithContext(ctx).Save(def).Error
}

// Delete deletes a field definition within an organization
func (r *GormFieldDefinitionRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&schema.FieldDefinition{}, "organization_id = ? AND id = ?", organizationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
