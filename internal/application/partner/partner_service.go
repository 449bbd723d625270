package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/partner"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// PartnerService handles vendor and client management for an organization
type PartnerService struct {
	partnerRepo partner.PartnerRepository
	recordRepo  record.FinanceRecordRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	partnerRepo partner.PartnerRepository,
	recordRepo record.FinanceRecordRepository,
) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		recordRepo:  recordRepo,
	}
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, organizationID uuid.UUID, req CreatePartnerRequest) (*PartnerResponse, error) {
	p, err := partner.NewPartner(organizationID, record.PartnerKind(req.Kind), req.Name)
	if err != nil {
		return nil, err
	}
	p.ContactName = req.ContactName
	p.Phone = req.Phone
	p.Email = req.Email
	p.Address = req.Address
	p.TaxID = req.TaxID
	p.Notes = req.Notes
	if req.CreatedBy != nil {
		p.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return ToPartnerResponse(p), nil
}

// GetByID retrieves a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToPartnerResponse(p), nil
}

// List retrieves the organization's partners, optionally narrowed to one kind
func (s *PartnerService) List(ctx context.Context, organizationID uuid.UUID, kind string) ([]PartnerResponse, error) {
	var kindFilter *record.PartnerKind
	if kind != "" {
		k := record.PartnerKind(kind)
		if k != record.PartnerKindVendor && k != record.PartnerKindClient {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Partner kind %q is not valid", kind))
		}
		kindFilter = &k
	}

	partners, err := s.partnerRepo.FindAllForOrg(ctx, organizationID, kindFilter)
	if err != nil {
		return nil, err
	}
	return ToPartnerResponses(partners), nil
}

// Update updates a partner's details. The kind stays fixed for the life of
// the partner.
func (s *PartnerService) Update(ctx context.Context, organizationID, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.TaxID, req.Notes); err != nil {
		return nil, err
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return ToPartnerResponse(p), nil
}

// Activate activates a partner
func (s *PartnerService) Activate(ctx context.Context, organizationID, id uuid.UUID) (*PartnerResponse, error) {
	return s.setStatus(ctx, organizationID, id, (*partner.Partner).Activate)
}

// Deactivate deactivates a partner so new records cannot reference it
func (s *PartnerService) Deactivate(ctx context.Context, organizationID, id uuid.UUID) (*PartnerResponse, error) {
	return s.setStatus(ctx, organizationID, id, (*partner.Partner).Deactivate)
}

func (s *PartnerService) setStatus(ctx context.Context, organizationID, id uuid.UUID, transition func(*partner.Partner) error) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := transition(p); err != nil {
		return nil, err
	}
	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPartnerResponse(p), nil
}

// Delete removes a partner that no record references
func (s *PartnerService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	p, err := s.partnerRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return err
	}

	filter := record.RecordFilter{PartnerID: &p.ID}
	filter.Page = 1
	filter.PageSize = 1
	_, total, err := s.recordRepo.FindAllForOrg(ctx, organizationID, filter)
	if err != nil {
		return err
	}
	if total > 0 {
		return shared.NewDomainError("PARTNER_IN_USE",
			fmt.Sprintf("Partner %q is referenced by existing records and cannot be deleted", p.Name))
	}

	return s.partnerRepo.Delete(ctx, organizationID, id)
}

// PartnerLookup adapts the repository to the lookup the record validator
// expects
type PartnerLookup struct {
	repo partner.PartnerRepository
}

// NewPartnerLookup creates a PartnerLookup backed by the repository
func NewPartnerLookup(repo partner.PartnerRepository) *PartnerLookup {
	return &PartnerLookup{repo: repo}
}

// Kind returns the partner's kind, or shared.ErrNotFound when the partner
// does not belong to the organization
func (l *PartnerLookup) Kind(ctx context.Context, organizationID, partnerID uuid.UUID) (record.PartnerKind, error) {
	return l.repo.KindOf(ctx, organizationID, partnerID)
}
