package approval

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// ConditionOperator is the comparison applied between a resolved record
// attribute and a rule literal
type ConditionOperator string

const (
	OperatorGreaterThan      ConditionOperator = "$gt"
	OperatorLessThan         ConditionOperator = "$lt"
	OperatorEquals           ConditionOperator = "$eq"
	OperatorGreaterThanEqual ConditionOperator = "$gte"
	OperatorLessThanEqual    ConditionOperator = "$lte"
	OperatorNotEquals        ConditionOperator = "$ne"
)

// IsValid checks if the operator is one of the supported comparisons
func (o ConditionOperator) IsValid() bool {
	switch o {
	case OperatorGreaterThan, OperatorLessThan, OperatorEquals,
		OperatorGreaterThanEqual, OperatorLessThanEqual, OperatorNotEquals:
		return true
	}
	return false
}

// Condition compares the value at a dotted record path against a literal.
// Paths address record attributes ("status", "type") or field values
// through the "fields" prefix ("fields.total_amount").
type Condition struct {
	Path     string            `json:"path"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value"`
}

// Conditions is the conjunctive condition list of a rule
type Conditions []Condition

// Value implements driver.Valuer for JSONB storage
func (c Conditions) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *Conditions) Scan(value any) error {
	if value == nil {
		*c = Conditions{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Conditions", value)
	}
	if len(data) == 0 {
		*c = Conditions{}
		return nil
	}
	return json.Unmarshal(data, c)
}

// ApprovalRule names the approvers a record must collect when all of its
// conditions hold. Rules are organization-scoped and every active rule is
// evaluated against every record entering approval.
type ApprovalRule struct {
	shared.OrgAggregateRoot
	Name              string             `json:"name" gorm:"type:varchar(200);not null"`
	Conditions        Conditions         `json:"conditions" gorm:"type:jsonb"`
	RequiredApprovers record.ApproverSet `json:"required_approvers" gorm:"type:jsonb"`
	Active            bool               `json:"active" gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ApprovalRule) TableName() string {
	return "approval_rules"
}

// NewApprovalRule creates a new approval rule
func NewApprovalRule(organizationID uuid.UUID, name string, conditions Conditions, approvers []uuid.UUID) (*ApprovalRule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Rule name is required")
	}
	if err := validateConditions(conditions); err != nil {
		return nil, err
	}
	if len(approvers) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Rule requires at least one approver")
	}

	rule := &ApprovalRule{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(organizationID),
		Name:              strings.TrimSpace(name),
		Conditions:        conditions,
		RequiredApprovers: record.NewApproverSet(approvers),
		Active:            true,
	}
	rule.AddDomainEvent(NewApprovalRuleCreatedEvent(rule))
	return rule, nil
}

// Update replaces the rule's name, conditions and approvers
func (r *ApprovalRule) Update(name string, conditions Conditions, approvers []uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "Rule name is required")
	}
	if err := validateConditions(conditions); err != nil {
		return err
	}
	if len(approvers) == 0 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Rule requires at least one approver")
	}
	r.Name = strings.TrimSpace(name)
	r.Conditions = conditions
	r.RequiredApprovers = record.NewApproverSet(approvers)
	r.AddDomainEvent(NewApprovalRuleUpdatedEvent(r))
	return nil
}

// Activate enables the rule for evaluation
func (r *ApprovalRule) Activate() {
	r.Active = true
}

// Deactivate removes the rule from evaluation without deleting it
func (r *ApprovalRule) Deactivate() {
	r.Active = false
}

func validateConditions(conditions Conditions) error {
	if len(conditions) == 0 {
		return shared.NewDomainError(shared.ErrCodeValidation, "Rule requires at least one condition")
	}
	for _, cond := range conditions {
		if strings.TrimSpace(cond.Path) == "" {
			return shared.NewDomainError(shared.ErrCodeValidation, "Condition path is required")
		}
		if !cond.Operator.IsValid() {
			return shared.NewDomainError(shared.ErrCodeValidation,
				fmt.Sprintf("Unknown condition operator %q", cond.Operator))
		}
		if cond.Value == nil {
			return shared.NewFieldError(shared.ErrCodeValidation, "Condition value is required", cond.Path)
		}
	}
	return nil
}
