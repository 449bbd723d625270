package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/partner"
)

// CreatePartnerRequest represents a request to create a partner
type CreatePartnerRequest struct {
	Kind        string     `json:"kind" binding:"required,oneof=vendor client"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	ContactName string     `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string     `json:"phone" binding:"omitempty,max=50"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Address     string     `json:"address"`
	TaxID       string     `json:"tax_id" binding:"omitempty,max=50"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdatePartnerRequest represents a request to update a partner. Kind is
// immutable.
type UpdatePartnerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id" binding:"omitempty,max=50"`
	Notes       string `json:"notes"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	TaxID       string    `json:"tax_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPartnerResponse converts a domain partner to a response
func ToPartnerResponse(p *partner.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:          p.ID,
		Kind:        string(p.Kind),
		Name:        p.Name,
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		TaxID:       p.TaxID,
		Notes:       p.Notes,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPartnerResponses converts a slice of partners
func ToPartnerResponses(partners []partner.Partner) []PartnerResponse {
	out := make([]PartnerResponse, len(partners))
	for i := range partners {
		out[i] = *ToPartnerResponse(&partners[i])
	}
	return out
}
