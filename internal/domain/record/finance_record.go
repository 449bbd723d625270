package record

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordStatus represents the lifecycle stage of a finance record
type RecordStatus string

const (
	RecordStatusDraft           RecordStatus = "draft"
	RecordStatusPendingApproval RecordStatus = "pending_approval"
	RecordStatusApproved        RecordStatus = "approved"
	RecordStatusPaid            RecordStatus = "paid"
	RecordStatusCompleted       RecordStatus = "completed"
)

// IsValid checks if the status is a valid RecordStatus
func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusDraft, RecordStatusPendingApproval, RecordStatusApproved,
		RecordStatusPaid, RecordStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of RecordStatus
func (s RecordStatus) String() string {
	return string(s)
}

// CanApprove returns true if approvals can be collected in this status
func (s RecordStatus) CanApprove() bool {
	return s == RecordStatusPendingApproval
}

// Reachable reports whether the status can be set through the exposed
// lifecycle. paid and completed are declared but no operation transitions
// into them; they only survive on records that already carry them.
func (s RecordStatus) Reachable() bool {
	return s == RecordStatusDraft || s == RecordStatusPendingApproval || s == RecordStatusApproved
}

// RecurrenceFrequency represents how often a record repeats
type RecurrenceFrequency string

const (
	RecurrenceNone    RecurrenceFrequency = "none"
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
	RecurrenceYearly  RecurrenceFrequency = "yearly"
)

// IsValid checks if the frequency is valid
func (f RecurrenceFrequency) IsValid() bool {
	switch f {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Recurrence describes an optional repetition schedule for a record
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	NextDate  *time.Time          `json:"next_date,omitempty"`
	EndDate   *time.Time          `json:"end_date,omitempty"`
}

// Value implements driver.Valuer for JSONB persistence
func (r Recurrence) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB persistence
func (r *Recurrence) Scan(value any) error {
	if value == nil {
		*r = Recurrence{Frequency: RecurrenceNone}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Recurrence", value)
	}
	if len(data) == 0 {
		*r = Recurrence{Frequency: RecurrenceNone}
		return nil
	}
	return json.Unmarshal(data, r)
}

// ApproverSet is an ordered, duplicate-free set of approver identities
type ApproverSet []uuid.UUID

// Contains reports whether the set holds the given identity
func (s ApproverSet) Contains(id uuid.UUID) bool {
	for _, member := range s {
		if member == id {
			return true
		}
	}
	return false
}

// Add appends the identity if not already present
func (s ApproverSet) Add(id uuid.UUID) ApproverSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// ContainsAll reports whether the set is a superset of other, order-independent
func (s ApproverSet) ContainsAll(other ApproverSet) bool {
	for _, member := range other {
		if !s.Contains(member) {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer for JSONB persistence
func (s ApproverSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB persistence
func (s *ApproverSet) Scan(value any) error {
	if value == nil {
		*s = ApproverSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ApproverSet", value)
	}
	if len(data) == 0 {
		*s = ApproverSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// NewApproverSet builds a deduplicated set from the given identities,
// preserving first-seen order
func NewApproverSet(ids []uuid.UUID) ApproverSet {
	set := make(ApproverSet, 0, len(ids))
	for _, id := range ids {
		set = set.Add(id)
	}
	return set
}

// FinanceRecord is the aggregate root for a single per-organization finance
// record whose field set is defined by the organization's schema.
type FinanceRecord struct {
	shared.OrgAggregateRoot
	Type              schema.RecordType `json:"type" gorm:"type:varchar(20);not null;index"`
	CategoryID        uuid.UUID         `json:"category_id" gorm:"type:uuid;not null;index"`
	PartnerID         *uuid.UUID        `json:"partner_id,omitempty" gorm:"type:uuid;index"`
	Status            RecordStatus      `json:"status" gorm:"type:varchar(30);not null;index"`
	Fields            FieldValues       `json:"fields" gorm:"type:jsonb"`
	Recurrence        Recurrence        `json:"recurrence" gorm:"type:jsonb"`
	ApprovalsRequired ApproverSet       `json:"approvals_required" gorm:"type:jsonb"`
	ApprovalsGiven    ApproverSet       `json:"approvals_given" gorm:"type:jsonb"`
	ApprovedBy        *uuid.UUID        `json:"approved_by,omitempty" gorm:"type:uuid"`
	PaidOn            *time.Time        `json:"paid_on,omitempty" gorm:"index"`
}

// TableName returns the table name for GORM
func (FinanceRecord) TableName() string {
	return "finance_records"
}

// NewFinanceRecord creates a new finance record. When initialStatus is
// empty the record starts out approved; the approval workflow only engages
// when the caller explicitly requests draft or pending_approval. This
// mirrors the legacy creation behavior and is a documented ambiguity.
func NewFinanceRecord(organizationID uuid.UUID, recordType schema.RecordType, categoryID, createdBy uuid.UUID, initialStatus RecordStatus) (*FinanceRecord, error) {
	if !recordType.IsValid() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Record type %q is not valid", recordType))
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "Category is required")
	}
	if initialStatus == "" {
		initialStatus = RecordStatusApproved
	}
	if !initialStatus.IsValid() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Status %q is not valid", initialStatus))
	}
	if !initialStatus.Reachable() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("No operation transitions a record into %s", initialStatus))
	}

	rec := &FinanceRecord{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Type:             recordType,
		CategoryID:       categoryID,
		Status:           initialStatus,
		Fields:           FieldValues{},
		Recurrence:       Recurrence{Frequency: RecurrenceNone},
	}
	rec.SetCreatedBy(createdBy)

	rec.AddDomainEvent(NewRecordCreatedEvent(rec))

	return rec, nil
}

// SetFields replaces the record's field values. Callers must validate the
// keys against the registry before committing.
func (r *FinanceRecord) SetFields(fields FieldValues) {
	if fields == nil {
		fields = FieldValues{}
	}
	r.Fields = fields
	r.UpdatedAt = time.Now()
}

// SetCategory changes the record's category
func (r *FinanceRecord) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError(shared.ErrCodeValidation, "Category is required")
	}
	r.CategoryID = categoryID
	r.UpdatedAt = time.Now()
	return nil
}

// SetPartner sets or clears the optional partner reference
func (r *FinanceRecord) SetPartner(partnerID *uuid.UUID) {
	r.PartnerID = partnerID
	r.UpdatedAt = time.Now()
}

// SetRecurrence sets the repetition schedule
func (r *FinanceRecord) SetRecurrence(rec Recurrence) error {
	if rec.Frequency == "" {
		rec.Frequency = RecurrenceNone
	}
	if !rec.Frequency.IsValid() {
		return shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Recurrence frequency %q is not valid", rec.Frequency))
	}
	if rec.NextDate != nil && rec.EndDate != nil && rec.EndDate.Before(*rec.NextDate) {
		return shared.NewDomainError(shared.ErrCodeValidation, "Recurrence end date cannot be before the next date")
	}
	r.Recurrence = rec
	r.UpdatedAt = time.Now()
	return nil
}

// BeginApproval moves the record into pending_approval with a freshly
// computed required-approver set. Any prior partial approvals are
// discarded. An empty required set auto-approves immediately.
func (r *FinanceRecord) BeginApproval(required ApproverSet) {
	r.ApprovalsRequired = required
	r.ApprovalsGiven = ApproverSet{}
	r.ApprovedBy = nil
	r.UpdatedAt = time.Now()

	if len(required) == 0 {
		r.Status = RecordStatusApproved
		r.AddDomainEvent(NewRecordApprovedEvent(r, nil))
		return
	}

	r.Status = RecordStatusPendingApproval
	r.AddDomainEvent(NewRecordSubmittedEvent(r))
}

// Approve registers one approver's vote. It is idempotent per identity and
// advances the record to approved once every required approver has voted.
func (r *FinanceRecord) Approve(approver uuid.UUID) error {
	if !r.Status.CanApprove() {
		return shared.NewDomainError(shared.ErrCodeApproval, fmt.Sprintf("Cannot approve a record in %s status", r.Status))
	}
	if !r.ApprovalsRequired.Contains(approver) {
		return shared.NewFieldError(shared.ErrCodeApproval, fmt.Sprintf("User %s is not a required approver for this record", approver), approver.String())
	}

	r.ApprovalsGiven = r.ApprovalsGiven.Add(approver)
	r.UpdatedAt = time.Now()

	if r.ApprovalsGiven.ContainsAll(r.ApprovalsRequired) {
		r.Status = RecordStatusApproved
		r.ApprovedBy = &approver
		r.AddDomainEvent(NewRecordApprovedEvent(r, &approver))
	}

	return nil
}

// SetStatus applies a direct status change outside the approval flow.
// Only draft and approved can be set this way; pending_approval must go
// through BeginApproval so the required set is recomputed, and nothing
// transitions into paid or completed.
func (r *FinanceRecord) SetStatus(status RecordStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Status %q is not valid", status))
	}
	if status == RecordStatusPendingApproval {
		return shared.NewDomainError("INVALID_STATE", "Use the approval workflow to move a record into pending_approval")
	}
	if !status.Reachable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("No operation transitions a record into %s", status))
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

// IsPendingApproval returns true if the record awaits approvals
func (r *FinanceRecord) IsPendingApproval() bool {
	return r.Status == RecordStatusPendingApproval
}

// IsApproved returns true if the record is approved
func (r *FinanceRecord) IsApproved() bool {
	return r.Status == RecordStatusApproved
}
