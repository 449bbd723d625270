package record

import (
	"context"
	"fmt"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerKind discriminates partners supplying a record: vendors back
// expenses, clients back revenues.
type PartnerKind string

const (
	PartnerKindVendor PartnerKind = "vendor"
	PartnerKindClient PartnerKind = "client"
)

// MatchesRecordType reports whether the partner kind is valid for records
// of the given type
func (k PartnerKind) MatchesRecordType(recordType schema.RecordType) bool {
	switch recordType {
	case schema.RecordTypeExpense:
		return k == PartnerKindVendor
	case schema.RecordTypeRevenue:
		return k == PartnerKindClient
	}
	return false
}

// CategoryLookup resolves categories owned by an organization
type CategoryLookup interface {
	// Exists reports whether the category belongs to the organization
	Exists(ctx context.Context, organizationID, categoryID uuid.UUID) (bool, error)
}

// PartnerLookup resolves partners owned by an organization
type PartnerLookup interface {
	// Kind returns the partner's kind, or shared.ErrNotFound when the
	// partner does not exist in the organization
	Kind(ctx context.Context, organizationID, partnerID uuid.UUID) (PartnerKind, error)
}

// Validator checks a record's category, optional partner and field-name
// set against a registry snapshot.
type Validator struct {
	categories CategoryLookup
	partners   PartnerLookup
}

// NewValidator creates a new Validator
func NewValidator(categories CategoryLookup, partners PartnerLookup) *Validator {
	return &Validator{
		categories: categories,
		partners:   partners,
	}
}

// Validate runs the checks in order, stopping at the first failure, and
// returns the definitions applicable to the record's type for reuse by the
// formula evaluator and the final-amount check. The snapshot must contain
// every definition of the record's organization so unknown names can be
// told apart from inapplicable ones.
func (v *Validator) Validate(ctx context.Context, rec *FinanceRecord, registrySnapshot []schema.FieldDefinition) ([]schema.FieldDefinition, error) {
	if err := v.validateCategory(ctx, rec); err != nil {
		return nil, err
	}
	if err := v.validatePartner(ctx, rec); err != nil {
		return nil, err
	}

	byName := make(map[string]*schema.FieldDefinition, len(registrySnapshot))
	for i := range registrySnapshot {
		byName[registrySnapshot[i].Name] = &registrySnapshot[i]
	}

	for name, value := range rec.Fields {
		def, ok := byName[name]
		if !ok {
			return nil, shared.NewFieldError(shared.ErrCodeReference,
				fmt.Sprintf("Field %q is not defined for this organization", name), name)
		}
		if !def.ApplicableTo.AppliesTo(rec.Type) {
			return nil, shared.NewFieldError(shared.ErrCodeValidation,
				fmt.Sprintf("Field %q does not apply to %s records", name, rec.Type), name)
		}
		// Formula values are evaluator output, not caller input; their
		// conformance is established after evaluation.
		if def.Type == schema.FieldTypeFormula {
			continue
		}
		if !value.ConformsTo(def.Type) {
			return nil, shared.NewFieldError(shared.ErrCodeType,
				fmt.Sprintf("Field %q expects a %s value", name, def.Type), name)
		}
		if def.Type == schema.FieldTypeDropdown && !containsOption(def.Options, value.Str) {
			return nil, shared.NewFieldError(shared.ErrCodeValidation,
				fmt.Sprintf("Value %q is not an option of dropdown field %q", value.Str, name), name)
		}
	}

	return schema.DefinitionsFor(registrySnapshot, rec.Type), nil
}

func (v *Validator) validateCategory(ctx context.Context, rec *FinanceRecord) error {
	ok, err := v.categories.Exists(ctx, rec.OrganizationID, rec.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError(shared.ErrCodeReference, "Category not found in this organization")
	}
	return nil
}

func (v *Validator) validatePartner(ctx context.Context, rec *FinanceRecord) error {
	if rec.PartnerID == nil {
		return nil
	}
	kind, err := v.partners.Kind(ctx, rec.OrganizationID, *rec.PartnerID)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError(shared.ErrCodeReference, "Partner not found in this organization")
		}
		return err
	}
	if !kind.MatchesRecordType(rec.Type) {
		return shared.NewDomainError(shared.ErrCodeValidation,
			fmt.Sprintf("Partner of kind %q cannot be attached to %s records", kind, rec.Type))
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
