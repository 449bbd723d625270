package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/partner"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByIDForOrg finds a partner by ID within an organization
func (r *GormPartnerRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAllForOrg finds all partners for an organization, optionally narrowed to one kind
func (r *GormPartnerRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, kind *record.PartnerKind) ([]partner.Partner, error) {
	query := r.db.WithContext(ctx).Where("organization_id = ?", organizationID)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	var partners []partner.Partner
	if err := query.Order("name ASC").Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// KindOf returns the partner's kind within an organization
func (r *GormPartnerRepository) KindOf(ctx context.Context, organizationID, id uuid.UUID) (record.PartnerKind, error) {
	var kind record.PartnerKind
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Select("kind").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return kind, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete deletes a partner within an organization
func (r *GormPartnerRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Partner{}, "organization_id = ? AND id = ?", organizationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
