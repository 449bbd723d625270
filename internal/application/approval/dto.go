package approval

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/approval"
)

// ConditionRequest is one operator/value entry of a rule
type ConditionRequest struct {
	Path     string `json:"path" binding:"required"`
	Operator string `json:"operator" binding:"required,oneof=$gt $lt $eq $gte $lte $ne"`
	Value    any    `json:"value" binding:"required"`
}

// CreateApprovalRuleRequest represents a request to create an approval rule
type CreateApprovalRuleRequest struct {
	Name              string             `json:"name" binding:"required,min=1,max=200"`
	Conditions        []ConditionRequest `json:"conditions" binding:"required,min=1,dive"`
	RequiredApprovers []uuid.UUID        `json:"required_approvers" binding:"required,min=1"`
	CreatedBy         *uuid.UUID         `json:"-"`
}

// UpdateApprovalRuleRequest represents a request to update an approval rule
type UpdateApprovalRuleRequest struct {
	Name              string             `json:"name" binding:"required,min=1,max=200"`
	Conditions        []ConditionRequest `json:"conditions" binding:"required,min=1,dive"`
	RequiredApprovers []uuid.UUID        `json:"required_approvers" binding:"required,min=1"`
	Active            *bool              `json:"active"`
}

// ApprovalRuleResponse represents an approval rule in API responses
type ApprovalRuleResponse struct {
	ID                uuid.UUID           `json:"id"`
	Name              string              `json:"name"`
	Conditions        approval.Conditions `json:"conditions"`
	RequiredApprovers []uuid.UUID         `json:"required_approvers"`
	Active            bool                `json:"active"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Version           int                 `json:"version"`
}

// ToApprovalRuleResponse converts a domain rule to a response
func ToApprovalRuleResponse(rule *approval.ApprovalRule) *ApprovalRuleResponse {
	return &ApprovalRuleResponse{
		ID:                rule.ID,
		Name:              rule.Name,
		Conditions:        rule.Conditions,
		RequiredApprovers: rule.RequiredApprovers,
		Active:            rule.Active,
		CreatedAt:         rule.CreatedAt,
		UpdatedAt:         rule.UpdatedAt,
		Version:           rule.GetVersion(),
	}
}

// ToApprovalRuleResponses converts a slice of rules
func ToApprovalRuleResponses(rules []approval.ApprovalRule) []ApprovalRuleResponse {
	out := make([]ApprovalRuleResponse, len(rules))
	for i := range rules {
		out[i] = *ToApprovalRuleResponse(&rules[i])
	}
	return out
}

func toConditions(reqs []ConditionRequest) approval.Conditions {
	conditions := make(approval.Conditions, len(reqs))
	for i, req := range reqs {
		conditions[i] = approval.Condition{
			Path:     req.Path,
			Operator: approval.ConditionOperator(req.Operator),
			Value:    req.Value,
		}
	}
	return conditions
}
