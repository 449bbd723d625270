package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
)

// CreateRecordRequest represents a request to create a finance record
type CreateRecordRequest struct {
	Type       string             `json:"type" binding:"required,oneof=expense revenue"`
	CategoryID uuid.UUID          `json:"category_id" binding:"required"`
	PartnerID  *uuid.UUID         `json:"partner_id"`
	Status     string             `json:"status" binding:"omitempty,oneof=draft approved"`
	Fields     record.FieldValues `json:"fields"`
	Recurrence *RecurrenceRequest `json:"recurrence"`
	CreatedBy  uuid.UUID          `json:"-"`
}

// UpdateRecordRequest represents a validated update to a record. Version
// carries the version the caller read; the write fails on a mismatch.
type UpdateRecordRequest struct {
	CategoryID *uuid.UUID         `json:"category_id"`
	PartnerID  *uuid.UUID         `json:"partner_id"`
	Fields     record.FieldValues `json:"fields"`
	Recurrence *RecurrenceRequest `json:"recurrence"`
	Version    int                `json:"version" binding:"required,min=1"`
}

// TransitionStatusRequest asks for a lifecycle transition
type TransitionStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=draft pending_approval approved"`
	Version int    `json:"version" binding:"required,min=1"`
}

// RecurrenceRequest represents a repetition schedule
type RecurrenceRequest struct {
	Frequency string     `json:"frequency" binding:"required,oneof=none daily weekly monthly yearly"`
	NextDate  *time.Time `json:"next_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ListRecordsFilter narrows record listings
type ListRecordsFilter struct {
	Type       string     `form:"type" binding:"omitempty,oneof=expense revenue"`
	Status     string     `form:"status"`
	CategoryID *uuid.UUID `form:"category_id"`
	PartnerID  *uuid.UUID `form:"partner_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SortBy     string     `form:"sort_by"`
	SortDir    string     `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// RecordResponse represents a finance record in API responses
type RecordResponse struct {
	ID                uuid.UUID          `json:"id"`
	Type              string             `json:"type"`
	CategoryID        uuid.UUID          `json:"category_id"`
	PartnerID         *uuid.UUID         `json:"partner_id,omitempty"`
	Status            string             `json:"status"`
	Fields            record.FieldValues `json:"fields"`
	Recurrence        record.Recurrence  `json:"recurrence"`
	ApprovalsRequired []uuid.UUID        `json:"approvals_required"`
	ApprovalsGiven    []uuid.UUID        `json:"approvals_given"`
	ApprovedBy        *uuid.UUID         `json:"approved_by,omitempty"`
	CreatedBy         *uuid.UUID         `json:"created_by,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Version           int                `json:"version"`
}

// ToRecordResponse converts a domain record to a response
func ToRecordResponse(rec *record.FinanceRecord) *RecordResponse {
	return &RecordResponse{
		ID:                rec.ID,
		Type:              string(rec.Type),
		CategoryID:        rec.CategoryID,
		PartnerID:         rec.PartnerID,
		Status:            string(rec.Status),
		Fields:            rec.Fields,
		Recurrence:        rec.Recurrence,
		ApprovalsRequired: rec.ApprovalsRequired,
		ApprovalsGiven:    rec.ApprovalsGiven,
		ApprovedBy:        rec.ApprovedBy,
		CreatedBy:         rec.CreatedBy,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
		Version:           rec.GetVersion(),
	}
}

// ToRecordResponses converts a slice of records
func ToRecordResponses(recs []record.FinanceRecord) []RecordResponse {
	out := make([]RecordResponse, len(recs))
	for i := range recs {
		out[i] = *ToRecordResponse(&recs[i])
	}
	return out
}
