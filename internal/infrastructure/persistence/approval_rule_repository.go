package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/approval"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// GormApprovalRuleRepository implements ApprovalRuleRepository using GORM
type GormApprovalRuleRepository struct {
	db *gorm.DB
}

// NewGormApprovalRuleRepository creates a new GormApprovalRuleRepository
func NewGormApprovalRuleRepository(db *gorm.DB) *GormApprovalRuleRepository {
	return &GormApprovalRuleRepository{db: db}
}

// FindByID finds an approval rule by its ID
func (r *GormApprovalRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.ApprovalRule, error) {
	var rule approval.ApprovalRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindByIDForOrg finds an approval rule by ID within an organization
func (r *GormApprovalRuleRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*approval.ApprovalRule, error) {
	var rule approval.ApprovalRule
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAllForOrg finds all approval rules for an organization in creation order
func (r *GormApprovalRuleRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]approval.ApprovalRule, error) {
	var rules []approval.ApprovalRule
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindActiveForOrg finds the active approval rules for an organization
func (r *GormApprovalRuleRepository) FindActiveForOrg(ctx context.Context, organizationID uuid.UUID) ([]approval.ApprovalRule, error) {
	var rules []approval.ApprovalRule
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND active = ?", organizationID, true).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates an approval rule
func (r *GormApprovalRuleRepository) Save(ctx context.Context, rule *approval.ApprovalRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes an approval rule within an organization
func (r *GormApprovalRuleRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&approval.ApprovalRule{}, "organization_id = ? AND id = ?", organizationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
