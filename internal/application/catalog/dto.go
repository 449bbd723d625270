package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=100"`
	Description  string     `json:"description"`
	ApplicableTo string     `json:"applicable_to" binding:"omitempty,oneof=expense revenue both"`
	SortOrder    *int       `json:"sort_order"`
	CreatedBy    *uuid.UUID `json:"-"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description"`
	ApplicableTo string `json:"applicable_to" binding:"required,oneof=expense revenue both"`
	SortOrder    *int   `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ApplicableTo string    `json:"applicable_to"`
	SortOrder    int       `json:"sort_order"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ApplicableTo: string(category.ApplicableTo),
		SortOrder:    category.SortOrder,
		Status:       string(category.Status),
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = *ToCategoryResponse(&categories[i])
	}
	return out
}
