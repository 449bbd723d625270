package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/application/approval"
)

// ApprovalRuleHandler handles approval rule administration endpoints
type ApprovalRuleHandler struct {
	BaseHandler
	ruleService *approval.ApprovalRuleService
}

func NewApprovalRuleHandler(ruleService *approval.ApprovalRuleService) *ApprovalRuleHandler {
	return &ApprovalRuleHandler{ruleService: ruleService}
}

// Create registers a new approval rule
// POST /api/v1/approval-rules
func (h *ApprovalRuleHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req approval.CreateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ruleService.Create(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single approval rule
// GET /api/v1/approval-rules/:id
func (h *ApprovalRuleHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval rule ID")
		return
	}

	resp, err := h.ruleService.GetByID(c.Request.Context(), organizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all approval rules for the organization
// GET /api/v1/approval-rules
func (h *ApprovalRuleHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.ruleService.List(c.Request.Context(), organizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies an approval rule
// PUT /api/v1/approval-rules/:id
func (h *ApprovalRuleHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval rule ID")
		return
	}

	var req approval.UpdateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ruleService.Update(c.Request.Context(), organizationID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an approval rule
// DELETE /api/v1/approval-rules/:id
func (h *ApprovalRuleHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval rule ID")
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), organizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
