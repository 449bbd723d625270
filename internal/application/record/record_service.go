package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/approval"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/formula"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/telemetry"
)

// RecordService drives the lifecycle of finance records: every write runs
// validation, formula evaluation and the amount invariants before touching
// the store, and status moves only through the defined transitions.
type RecordService struct {
	recordRepo record.FinanceRecordRepository
	defRepo    schema.FieldDefinitionRepository
	ruleRepo   approval.ApprovalRuleRepository
	validator  *record.Validator
	evaluator  *formula.Evaluator
	engine     *approval.Engine
	events     shared.EventPublisher
}

// NewRecordService creates a new RecordService
func NewRecordService(
	recordRepo record.FinanceRecordRepository,
	defRepo schema.FieldDefinitionRepository,
	ruleRepo approval.ApprovalRuleRepository,
	validator *record.Validator,
	evaluator *formula.Evaluator,
	engine *approval.Engine,
) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		defRepo:    defRepo,
		ruleRepo:   ruleRepo,
		validator:  validator,
		evaluator:  evaluator,
		engine:     engine,
	}
}

// SetEventPublisher sets the publisher that receives the lifecycle events
// a record accumulates during a write
func (s *RecordService) SetEventPublisher(publisher shared.EventPublisher) {
	s.events = publisher
}

// Create validates and persists a new record
func (s *RecordService) Create(ctx context.Context, organizationID uuid.UUID, req CreateRecordRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance_record", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordType, req.Type,
		telemetry.SpanAttrFieldCount, len(req.Fields),
	)

	rec, err := record.NewFinanceRecord(organizationID, schema.RecordType(req.Type),
		req.CategoryID, req.CreatedBy, record.RecordStatus(req.Status))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	rec.SetPartner(req.PartnerID)
	rec.SetFields(req.Fields)
	if req.Recurrence != nil {
		if err := rec.SetRecurrence(toRecurrence(req.Recurrence)); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.runPipeline(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.recordRepo.Save(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, rec)

	telemetry.SetAttribute(span, telemetry.SpanAttrRecordID, rec.ID.String())
	telemetry.SetOK(span)
	return ToRecordResponse(rec), nil
}

// GetByID retrieves a record by ID
func (s *RecordService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*RecordResponse, error) {
	rec, err := s.recordRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(rec), nil
}

// List retrieves a page of the organization's records
func (s *RecordService) List(ctx context.Context, organizationID uuid.UUID, filter ListRecordsFilter) (*shared.Paginated[RecordResponse], error) {
	domainFilter := record.RecordFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
	}
	if filter.SortDir != "" {
		domainFilter.OrderDir = filter.SortDir
	}
	if filter.Type != "" {
		rt := schema.RecordType(filter.Type)
		domainFilter.Type = &rt
	}
	if filter.Status != "" {
		st := record.RecordStatus(filter.Status)
		if !st.IsValid() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, fmt.Sprintf("Status %q is not valid", filter.Status))
		}
		domainFilter.Status = &st
	}
	domainFilter.CategoryID = filter.CategoryID
	domainFilter.PartnerID = filter.PartnerID

	recs, total, err := s.recordRepo.FindAllForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToRecordResponses(recs), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a validated mutation. The write is guarded by the version
// the caller read: a concurrent writer wins and this update fails with a
// conflict instead of silently overwriting.
func (s *RecordService) Update(ctx context.Context, organizationID, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance_record", "update",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	rec, err := s.recordRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if rec.GetVersion() != req.Version {
		telemetry.RecordError(span, shared.ErrConcurrencyConflict)
		return nil, shared.ErrConcurrencyConflict
	}

	if req.CategoryID != nil {
		if err := rec.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.PartnerID != nil {
		rec.SetPartner(req.PartnerID)
	}
	if req.Fields != nil {
		rec.SetFields(req.Fields)
	}
	if req.Recurrence != nil {
		if err := rec.SetRecurrence(toRecurrence(req.Recurrence)); err != nil {
			return nil, err
		}
	}

	if err := s.runPipeline(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.recordRepo.SaveWithLock(ctx, rec, req.Version); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, rec)

	telemetry.SetOK(span)
	return ToRecordResponse(rec), nil
}

// TransitionStatus moves a record through the lifecycle. Entering
// pending_approval recomputes the required approver set from the
// organization's active rules and discards any prior partial approvals;
// an empty required set auto-approves. A transition to the current status
// is a no-op.
func (s *RecordService) TransitionStatus(ctx context.Context, organizationID, id uuid.UUID, req TransitionStatusRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance_record", "transition_status",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()),
		telemetry.WithAttribute(telemetry.SpanAttrRecordStatus, req.Status))
	defer span.End()

	rec, err := s.recordRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if rec.GetVersion() != req.Version {
		telemetry.RecordError(span, shared.ErrConcurrencyConflict)
		return nil, shared.ErrConcurrencyConflict
	}

	target := record.RecordStatus(req.Status)
	if target == rec.Status {
		return ToRecordResponse(rec), nil
	}

	if target == record.RecordStatusPendingApproval {
		rules, err := s.ruleRepo.FindActiveForOrg(ctx, organizationID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		required := s.engine.RequiredApprovers(rec, rules)
		rec.BeginApproval(required)
		telemetry.AddEvent(span, "approval_started",
			telemetry.SpanAttrApproverCount, len(required))
	} else {
		if err := rec.SetStatus(target); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.verifyInvariants(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.recordRepo.SaveWithLock(ctx, rec, req.Version); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, rec)

	telemetry.SetOK(span)
	return ToRecordResponse(rec), nil
}

// Approve registers one approver's vote on a pending record. The write is
// version-guarded so two racing approvals serialize: the loser retries
// against the refreshed approval state.
func (s *RecordService) Approve(ctx context.Context, organizationID, id, approverID uuid.UUID) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance_record", "approve",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	rec, err := s.recordRepo.FindByIDForOrg(ctx, organizationID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	expectedVersion := rec.GetVersion()
	if err := rec.Approve(approverID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.verifyInvariants(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.recordRepo.SaveWithLock(ctx, rec, expectedVersion); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, rec)

	telemetry.SetOK(span)
	return ToRecordResponse(rec), nil
}

// Delete removes a record
func (s *RecordService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return s.recordRepo.DeleteForOrg(ctx, organizationID, id)
}

// runPipeline is the shared write path: resolve and check definitions,
// recompute formulas, then enforce the amount invariants.
func (s *RecordService) runPipeline(ctx context.Context, rec *record.FinanceRecord) error {
	snapshot, err := s.defRepo.FindAllForOrg(ctx, rec.OrganizationID)
	if err != nil {
		return err
	}

	applicable, err := s.validator.Validate(ctx, rec, snapshot)
	if err != nil {
		return err
	}

	evaluated, err := s.evaluator.EvaluateAll(rec.Fields, applicable)
	if err != nil {
		return err
	}
	rec.SetFields(evaluated)

	return record.CheckInvariants(rec, applicable)
}

// verifyInvariants re-runs validation and the amount invariants without
// recomputing formulas. Status and approval writes change no field values,
// but a record whose data or schema drifted since its last write must not
// commit through them either.
func (s *RecordService) verifyInvariants(ctx context.Context, rec *record.FinanceRecord) error {
	snapshot, err := s.defRepo.FindAllForOrg(ctx, rec.OrganizationID)
	if err != nil {
		return err
	}

	applicable, err := s.validator.Validate(ctx, rec, snapshot)
	if err != nil {
		return err
	}

	return record.CheckInvariants(rec, applicable)
}

// publishEvents drains the record's pending events after a committed
// write. Delivery is best effort: the state change already persisted, so
// a publish failure must not fail the operation.
func (s *RecordService) publishEvents(ctx context.Context, rec *record.FinanceRecord) {
	events := rec.GetDomainEvents()
	rec.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
}

func toRecurrence(req *RecurrenceRequest) record.Recurrence {
	return record.Recurrence{
		Frequency: record.RecurrenceFrequency(req.Frequency),
		NextDate:  req.NextDate,
		EndDate:   req.EndDate,
	}
}
