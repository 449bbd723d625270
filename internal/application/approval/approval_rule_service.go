package approval

import (
	"context"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/approval"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
)

// ApprovalRuleService manages an organization's approval rules and exposes
// the engine for computing a record's required approvers.
type ApprovalRuleService struct {
	ruleRepo   approval.ApprovalRuleRepository
	recordRepo record.FinanceRecordRepository
	engine     *approval.Engine
}

// NewApprovalRuleService creates a new ApprovalRuleService
func NewApprovalRuleService(
	ruleRepo approval.ApprovalRuleRepository,
	recordRepo record.FinanceRecordRepository,
	engine *approval.Engine,
) *ApprovalRuleService {
	return &ApprovalRuleService{
		ruleRepo:   ruleRepo,
		recordRepo: recordRepo,
		engine:     engine,
	}
}

// Create creates a new approval rule
func (s *ApprovalRuleService) Create(ctx context.Context, organizationID uuid.UUID, req CreateApprovalRuleRequest) (*ApprovalRuleResponse, error) {
	rule, err := approval.NewApprovalRule(organizationID, req.Name, toConditions(req.Conditions), req.RequiredApprovers)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		rule.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	return ToApprovalRuleResponse(rule), nil
}

// GetByID retrieves a rule by ID
func (s *ApprovalRuleService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*ApprovalRuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToApprovalRuleResponse(rule), nil
}

// List retrieves all rules of an organization
func (s *ApprovalRuleService) List(ctx context.Context, organizationID uuid.UUID) ([]ApprovalRuleResponse, error) {
	rules, err := s.ruleRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return ToApprovalRuleResponses(rules), nil
}

// Update replaces a rule's name, conditions, approvers and active flag
func (s *ApprovalRuleService) Update(ctx context.Context, organizationID, id uuid.UUID, req UpdateApprovalRuleRequest) (*ApprovalRuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := rule.Update(req.Name, toConditions(req.Conditions), req.RequiredApprovers); err != nil {
		return nil, err
	}
	if req.Active != nil {
		if *req.Active {
			rule.Activate()
		} else {
			rule.Deactivate()
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	return ToApprovalRuleResponse(rule), nil
}

// Delete removes a rule. Pending records keep their already-computed
// required set; the change only affects later submissions.
func (s *ApprovalRuleService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return s.ruleRepo.Delete(ctx, organizationID, id)
}

// RequiredApproversFor recomputes the approver set a record would need if
// it entered approval now. Read-only: the record is not changed.
func (s *ApprovalRuleService) RequiredApproversFor(ctx context.Context, organizationID, recordID uuid.UUID) ([]uuid.UUID, error) {
	rec, err := s.recordRepo.FindByIDForOrg(ctx, organizationID, recordID)
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.FindActiveForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.engine.RequiredApprovers(rec, rules), nil
}
