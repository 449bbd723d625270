package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/formula"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// FieldDefinitionService handles schema administration for an organization
type FieldDefinitionService struct {
	defRepo    schema.FieldDefinitionRepository
	recordRepo record.FinanceRecordRepository
}

// NewFieldDefinitionService creates a new FieldDefinitionService
func NewFieldDefinitionService(
	defRepo schema.FieldDefinitionRepository,
	recordRepo record.FinanceRecordRepository,
) *FieldDefinitionService {
	return &FieldDefinitionService{
		defRepo:    defRepo,
		recordRepo: recordRepo,
	}
}

// Create creates a new field definition. Formula expressions are parsed up
// front so a malformed formula is rejected at definition time, not at the
// first record write.
func (s *FieldDefinitionService) Create(ctx context.Context, organizationID uuid.UUID, req CreateFieldDefinitionRequest) (*FieldDefinitionResponse, error) {
	exists, err := s.defRepo.ExistsByName(ctx, organizationID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewFieldError("ALREADY_EXISTS",
			fmt.Sprintf("A field named %q already exists in this organization", req.Name), req.Name)
	}

	def, err := schema.NewFieldDefinition(organizationID, req.Name, req.Label,
		schema.FieldType(req.Type), schema.Applicability(req.ApplicableTo))
	if err != nil {
		return nil, err
	}

	switch def.Type {
	case schema.FieldTypeDropdown:
		if err := def.SetOptions(req.Options); err != nil {
			return nil, err
		}
	case schema.FieldTypeFormula:
		if _, err := formula.Parse(req.Expression); err != nil {
			return nil, err
		}
		if err := def.SetExpression(req.Expression); err != nil {
			return nil, err
		}
	}

	if req.IsFinalAmount {
		if err := def.MarkFinalAmount(); err != nil {
			return nil, err
		}
		if err := s.ensureSingleFinalAmount(ctx, organizationID, def); err != nil {
			return nil, err
		}
	}

	if req.CreatedBy != nil {
		def.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.defRepo.Save(ctx, def); err != nil {
		return nil, err
	}

	return ToFieldDefinitionResponse(def), nil
}

// GetByID retrieves a field definition by ID
func (s *FieldDefinitionService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*FieldDefinitionResponse, error) {
	def, err := s.defRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToFieldDefinitionResponse(def), nil
}

// List retrieves the organization's field definitions, optionally narrowed
// to those applicable to one record type
func (s *FieldDefinitionService) List(ctx context.Context, organizationID uuid.UUID, recordType string) ([]FieldDefinitionResponse, error) {
	if recordType != "" {
		rt := schema.RecordType(recordType)
		if !rt.IsValid() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Record type %q is not valid", recordType))
		}
		defs, err := s.defRepo.FindApplicable(ctx, organizationID, rt)
		if err != nil {
			return nil, err
		}
		return ToFieldDefinitionResponses(defs), nil
	}

	defs, err := s.defRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return ToFieldDefinitionResponses(defs), nil
}

// Update edits a field definition. The name and type never change: records
// already persisted reference the name, and formulas may reference it too.
func (s *FieldDefinitionService) Update(ctx context.Context, organizationID, id uuid.UUID, req UpdateFieldDefinitionRequest) (*FieldDefinitionResponse, error) {
	def, err := s.defRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	label := def.Label
	if req.Label != nil {
		label = *req.Label
	}
	applicableTo := def.ApplicableTo
	if req.ApplicableTo != nil {
		applicableTo = schema.Applicability(*req.ApplicableTo)
	}
	if err := def.Update(label, applicableTo); err != nil {
		return nil, err
	}

	if req.Options != nil {
		if err := def.SetOptions(req.Options); err != nil {
			return nil, err
		}
	}
	if req.Expression != nil {
		if _, err := formula.Parse(*req.Expression); err != nil {
			return nil, err
		}
		if err := def.SetExpression(*req.Expression); err != nil {
			return nil, err
		}
	}
	if req.IsFinalAmount != nil {
		if *req.IsFinalAmount {
			if err := def.MarkFinalAmount(); err != nil {
				return nil, err
			}
			if err := s.ensureSingleFinalAmount(ctx, organizationID, def); err != nil {
				return nil, err
			}
		} else {
			def.SetConfig(schema.FieldConfig{})
		}
	}

	if err := s.defRepo.Save(ctx, def); err != nil {
		return nil, err
	}

	return ToFieldDefinitionResponse(def), nil
}

// ensureSingleFinalAmount rejects a final-amount marking that overlaps an
// existing final-amount definition. Two final-amount fields covering the
// same record type would make every write of such records fail, so the
// clash surfaces at definition time instead.
func (s *FieldDefinitionService) ensureSingleFinalAmount(ctx context.Context, organizationID uuid.UUID, def *schema.FieldDefinition) error {
	defs, err := s.defRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return err
	}
	for i := range defs {
		other := &defs[i]
		if other.ID == def.ID || !other.IsFinalAmount() {
			continue
		}
		for _, rt := range []schema.RecordType{schema.RecordTypeExpense, schema.RecordTypeRevenue} {
			if other.ApplicableTo.AppliesTo(rt) && def.ApplicableTo.AppliesTo(rt) {
				return shared.NewFieldError(shared.ErrCodeConfig,
					fmt.Sprintf("Field %q is already the final amount for %s records", other.Name, rt), def.Name)
			}
		}
	}
	return nil
}

// Delete removes a field definition. A definition referenced by any of the
// organization's records cannot be deleted; callers must migrate records
// off the field first.
func (s *FieldDefinitionService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	def, err := s.defRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return err
	}

	inUse, err := s.recordRepo.ExistsWithFieldName(ctx, organizationID, def.Name)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewFieldError(shared.ErrCodeFieldInUse,
			fmt.Sprintf("Field %q is referenced by existing records and cannot be deleted", def.Name), def.Name)
	}

	if err := s.defRepo.Delete(ctx, organizationID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}
