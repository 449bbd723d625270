package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category buckets an organization's finance records. Every record points
// at exactly one category; a category is scoped to expense records,
// revenue records or both.
type Category struct {
	shared.OrgAggregateRoot
	Name         string               `gorm:"type:varchar(100);not null"`
	Description  string               `gorm:"type:text"`
	ApplicableTo schema.Applicability `gorm:"type:varchar(20);not null;default:'both'"`
	SortOrder    int                  `gorm:"not null;default:0"`
	Status       CategoryStatus       `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(organizationID uuid.UUID, name string, applicableTo schema.Applicability) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if applicableTo == "" {
		applicableTo = schema.ApplicableToBoth
	}
	if !applicableTo.IsValid() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Applicability %q is not valid", applicableTo))
	}

	category := &Category{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             name,
		ApplicableTo:     applicableTo,
		Status:           CategoryStatusActive,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string, applicableTo schema.Applicability) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if !applicableTo.IsValid() {
		return shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Applicability %q is not valid", applicableTo))
	}

	c.Name = name
	c.Description = description
	c.ApplicableTo = applicableTo
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the category
func (c *Category) Activate() error {
	if c.Status == CategoryStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.Status = CategoryStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the category so new records cannot use it
func (c *Category) Deactivate() error {
	if c.Status == CategoryStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.Status = CategoryStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the category is active
func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

// AcceptsRecordType reports whether records of the given type may use
// this category
func (c *Category) AcceptsRecordType(recordType schema.RecordType) bool {
	return c.ApplicableTo.AppliesTo(recordType)
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Category name cannot exceed 100 characters")
	}
	return nil
}
