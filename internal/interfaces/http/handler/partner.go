package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/application/partner"
)

// PartnerHandler handles vendor and client endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partner.PartnerService
}

func NewPartnerHandler(partnerService *partner.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create creates a new partner
// POST /api/v1/partners
func (h *PartnerHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partner.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.partnerService.Create(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single partner
// GET /api/v1/partners/:id
func (h *PartnerHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	resp, err := h.partnerService.GetByID(c.Request.Context(), organizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns partners, optionally filtered by kind
// GET /api/v1/partners?kind=vendor
func (h *PartnerHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.partnerService.List(c.Request.Context(), organizationID, c.Query("kind"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a partner
// PUT /api/v1/partners/:id
func (h *PartnerHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	var req partner.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.partnerService.Update(c.Request.Context(), organizationID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate enables a partner for new records
// POST /api/v1/partners/:id/activate
func (h *PartnerHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.partnerService.Activate)
}

// Deactivate retires a partner without deleting it
// POST /api/v1/partners/:id/deactivate
func (h *PartnerHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.partnerService.Deactivate)
}

func (h *PartnerHandler) setStatus(c *gin.Context, op func(ctx context.Context, organizationID, id uuid.UUID) (*partner.PartnerResponse, error)) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	resp, err := op(c.Request.Context(), organizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an unused partner
// DELETE /api/v1/partners/:id
func (h *PartnerHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	if err := h.partnerService.Delete(c.Request.Context(), organizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
