package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/catalog"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// CategoryService handles category management for an organization
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	recordRepo   record.FinanceRecordRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	recordRepo record.FinanceRecordRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		recordRepo:   recordRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, organizationID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(organizationID, req.Name, schema.Applicability(req.ApplicableTo))
	if err != nil {
		return nil, err
	}
	category.Description = req.Description
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.CreatedBy != nil {
		category.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves the organization's categories, optionally narrowed to
// those usable by one record type
func (s *CategoryService) List(ctx context.Context, organizationID uuid.UUID, recordType string) ([]CategoryResponse, error) {
	if recordType != "" {
		rt := schema.RecordType(recordType)
		if !rt.IsValid() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Record type %q is not valid", recordType))
		}
		categories, err := s.categoryRepo.FindByApplicability(ctx, organizationID, rt)
		if err != nil {
			return nil, err
		}
		return ToCategoryResponses(categories), nil
	}

	categories, err := s.categoryRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, organizationID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description, schema.Applicability(req.ApplicableTo)); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Activate activates a category
func (s *CategoryService) Activate(ctx context.Context, organizationID, id uuid.UUID) (*CategoryResponse, error) {
	return s.setStatus(ctx, organizationID, id, (*catalog.Category).Activate)
}

// Deactivate deactivates a category. Existing records keep their category;
// new records may no longer use it.
func (s *CategoryService) Deactivate(ctx context.Context, organizationID, id uuid.UUID) (*CategoryResponse, error) {
	return s.setStatus(ctx, organizationID, id, (*catalog.Category).Deactivate)
}

func (s *CategoryService) setStatus(ctx context.Context, organizationID, id uuid.UUID, transition func(*catalog.Category) error) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := transition(category); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes a category that no record references
func (s *CategoryService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return err
	}

	filter := record.RecordFilter{CategoryID: &category.ID}
	filter.Page = 1
	filter.PageSize = 1
	_, total, err := s.recordRepo.FindAllForOrg(ctx, organizationID, filter)
	if err != nil {
		return err
	}
	if total > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE",
			fmt.Sprintf("Category %q is referenced by existing records and cannot be deleted", category.Name))
	}

	return s.categoryRepo.Delete(ctx, organizationID, id)
}

// CategoryLookup adapts the repository to the lookup the record validator
// expects
type CategoryLookup struct {
	repo catalog.CategoryRepository
}

// NewCategoryLookup creates a CategoryLookup backed by the repository
func NewCategoryLookup(repo catalog.CategoryRepository) *CategoryLookup {
	return &CategoryLookup{repo: repo}
}

// Exists reports whether the category belongs to the organization
func (l *CategoryLookup) Exists(ctx context.Context, organizationID, categoryID uuid.UUID) (bool, error) {
	return l.repo.ExistsForOrg(ctx, organizationID, categoryID)
}
