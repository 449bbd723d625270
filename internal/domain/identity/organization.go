package identity

import (
	"strings"
	"time"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusInactive  OrganizationStatus = "inactive"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// OrganizationConfig holds configurable settings for an organization
type OrganizationConfig struct {
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
	Locale   string `json:"locale"`
}

// DefaultOrganizationConfig returns the default configuration for a new organization
func DefaultOrganizationConfig() OrganizationConfig {
	return OrganizationConfig{
		Currency: "INR",
		Timezone: "Asia/Kolkata",
		Locale:   "en-IN",
	}
}

// Organization is the unit of isolation: every field definition, finance
// record, approval rule, category and partner belongs to exactly one
// organization, and no query crosses organizations.
type Organization struct {
	shared.BaseAggregateRoot
	Code         string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string             `gorm:"type:varchar(200);not null"`
	Status       OrganizationStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName  string             `gorm:"type:varchar(100)"`
	ContactEmail string             `gorm:"type:varchar(200)"`
	Config       OrganizationConfig `gorm:"embedded;embeddedPrefix:config_"`
	Notes        string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization with required fields
func NewOrganization(code, name string) (*Organization, error) {
	if err := validateOrganizationCode(code); err != nil {
		return nil, err
	}
	if err := validateOrganizationName(name); err != nil {
		return nil, err
	}

	org := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            OrganizationStatusActive,
		Config:            DefaultOrganizationConfig(),
	}

	org.AddDomainEvent(NewOrganizationCreatedEvent(org))

	return org, nil
}

// Update updates the organization's basic information
func (o *Organization) Update(name, contactName, contactEmail string) error {
	if err := validateOrganizationName(name); err != nil {
		return err
	}

	o.Name = name
	o.ContactName = contactName
	o.ContactEmail = contactEmail
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrganizationUpdatedEvent(o))

	return nil
}

// UpdateConfig replaces the organization's settings
func (o *Organization) UpdateConfig(config OrganizationConfig) {
	o.Config = config
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Suspend suspends the organization, blocking all member access
func (o *Organization) Suspend() error {
	if o.Status == OrganizationStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Organization is already suspended")
	}

	o.Status = OrganizationStatusSuspended
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Activate activates the organization
func (o *Organization) Activate() error {
	if o.Status == OrganizationStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Organization is already active")
	}

	o.Status = OrganizationStatusActive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsActive returns true if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

// validateOrganizationCode validates the organization code
func validateOrganizationCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Organization code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Organization code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Organization code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateOrganizationName validates the organization name
func validateOrganizationName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}
