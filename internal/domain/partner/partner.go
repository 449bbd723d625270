package partner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// PartnerStatus represents the status of a partner
type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "active"
	PartnerStatusInactive PartnerStatus = "inactive"
)

// Partner is the counterparty of a finance record: vendors supply the
// organization and appear on expense records, clients are billed and
// appear on revenue records.
type Partner struct {
	shared.OrgAggregateRoot
	Kind        record.PartnerKind `gorm:"type:varchar(20);not null;index"`
	Name        string             `gorm:"type:varchar(200);not null"`
	ContactName string             `gorm:"type:varchar(100)"`
	Phone       string             `gorm:"type:varchar(50);index"`
	Email       string             `gorm:"type:varchar(200);index"`
	Address     string             `gorm:"type:text"`
	TaxID       string             `gorm:"type:varchar(50)"`
	Notes       string             `gorm:"type:text"`
	Status      PartnerStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner with required fields
func NewPartner(organizationID uuid.UUID, kind record.PartnerKind, name string) (*Partner, error) {
	if kind != record.PartnerKindVendor && kind != record.PartnerKindClient {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Partner kind %q is not valid", kind))
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	partner := &Partner{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Kind:             kind,
		Name:             name,
		Status:           PartnerStatusActive,
	}

	partner.AddDomainEvent(NewPartnerCreatedEvent(partner))

	return partner, nil
}

// NewVendor creates a new vendor partner
func NewVendor(organizationID uuid.UUID, name string) (*Partner, error) {
	return NewPartner(organizationID, record.PartnerKindVendor, name)
}

// NewClient creates a new client partner
func NewClient(organizationID uuid.UUID, name string) (*Partner, error) {
	return NewPartner(organizationID, record.PartnerKindClient, name)
}

// Update updates the partner's basic information. Kind is immutable:
// existing records rely on the vendor/client distinction.
func (p *Partner) Update(name, contactName, phone, email, address, taxID, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Contact name cannot exceed 100 characters")
	}

	p.Name = name
	p.ContactName = contactName
	p.Phone = phone
	p.Email = email
	p.Address = address
	p.TaxID = taxID
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPartnerUpdatedEvent(p))

	return nil
}

// Activate activates the partner
func (p *Partner) Activate() error {
	if p.Status == PartnerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Partner is already active")
	}

	p.Status = PartnerStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the partner so new records cannot reference it
func (p *Partner) Deactivate() error {
	if p.Status == PartnerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Partner is already inactive")
	}

	p.Status = PartnerStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the partner is active
func (p *Partner) IsActive() bool {
	return p.Status == PartnerStatusActive
}

// MatchesRecordType reports whether this partner may back records of the
// given type
func (p *Partner) MatchesRecordType(recordType schema.RecordType) bool {
	return p.Kind.MatchesRecordType(recordType)
}

// validatePartnerName validates the partner name
func validatePartnerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Partner name cannot exceed 200 characters")
	}
	return nil
}
