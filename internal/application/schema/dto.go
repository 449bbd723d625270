package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
)

// CreateFieldDefinitionRequest represents a request to create a field definition
type CreateFieldDefinitionRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=100"`
	Label         string     `json:"label" binding:"required,min=1,max=200"`
	Type          string     `json:"type" binding:"required"`
	Options       []string   `json:"options"`
	Expression    string     `json:"expression"`
	ApplicableTo  string     `json:"applicable_to"`
	IsFinalAmount bool       `json:"is_final_amount"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// UpdateFieldDefinitionRequest represents a request to update a field
// definition. Name and type are immutable.
type UpdateFieldDefinitionRequest struct {
	Label         *string  `json:"label" binding:"omitempty,min=1,max=200"`
	Options       []string `json:"options"`
	Expression    *string  `json:"expression"`
	ApplicableTo  *string  `json:"applicable_to"`
	IsFinalAmount *bool    `json:"is_final_amount"`
}

// FieldDefinitionResponse represents a field definition in API responses
type FieldDefinitionResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Label         string    `json:"label"`
	Type          string    `json:"type"`
	Options       []string  `json:"options,omitempty"`
	Expression    string    `json:"expression,omitempty"`
	ApplicableTo  string    `json:"applicable_to"`
	IsFinalAmount bool      `json:"is_final_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToFieldDefinitionResponse converts a domain field definition to a response
func ToFieldDefinitionResponse(def *schema.FieldDefinition) *FieldDefinitionResponse {
	return &FieldDefinitionResponse{
		ID:            def.ID,
		Name:          def.Name,
		Label:         def.Label,
		Type:          string(def.Type),
		Options:       def.Options,
		Expression:    def.Expression,
		ApplicableTo:  string(def.ApplicableTo),
		IsFinalAmount: def.IsFinalAmount(),
		CreatedAt:     def.CreatedAt,
		UpdatedAt:     def.UpdatedAt,
		Version:       def.GetVersion(),
	}
}

// ToFieldDefinitionResponses converts a slice of definitions
func ToFieldDefinitionResponses(defs []schema.FieldDefinition) []FieldDefinitionResponse {
	out := make([]FieldDefinitionResponse, len(defs))
	for i := range defs {
		out[i] = *ToFieldDefinitionResponse(&defs[i])
	}
	return out
}
