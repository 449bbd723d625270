package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/application/schema"
)

// FieldDefinitionHandler handles the per-organization field catalog
type FieldDefinitionHandler struct {
	BaseHandler
	fieldService *schema.FieldDefinitionService
}

func NewFieldDefinitionHandler(fieldService *schema.FieldDefinitionService) *FieldDefinitionHandler {
	return &FieldDefinitionHandler{fieldService: fieldService}
}

// Create registers a new field definition
// POST /api/v1/field-definitions
func (h *FieldDefinitionHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req schema.CreateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.fieldService.Create(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single field definition
// GET /api/v1/field-definitions/:id
func (h *FieldDefinitionHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field definition ID")
		return
	}

	resp, err := h.fieldService.GetByID(c.Request.Context(), organizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns field definitions, optionally filtered by record type
// GET /api/v1/field-definitions?record_type=expense
func (h *FieldDefinitionHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.fieldService.List(c.Request.Context(), organizationID, c.Query("record_type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a field definition's mutable attributes
// PUT /api/v1/field-definitions/:id
func (h *FieldDefinitionHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field definition ID")
		return
	}

	var req schema.UpdateFieldDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.fieldService.Update(c.Request.Context(), organizationID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a field definition that no record references
// DELETE /api/v1/field-definitions/:id
func (h *FieldDefinitionHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid field definition ID")
		return
	}

	if err := h.fieldService.Delete(c.Request.Context(), organizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
