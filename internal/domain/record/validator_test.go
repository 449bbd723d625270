package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

type mockCategoryLookup struct {
	mock.Mock
}

func (m *mockCategoryLookup) Exists(ctx context.Context, organizationID, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, organizationID, categoryID)
	return args.Bool(0), args.Error(1)
}

type mockPartnerLookup struct {
	mock.Mock
}

func (m *mockPartnerLookup) Kind(ctx context.Context, organizationID, partnerID uuid.UUID) (PartnerKind, error) {
	args := m.Called(ctx, organizationID, partnerID)
	return args.Get(0).(PartnerKind), args.Error(1)
}

func registrySnapshot() []schema.FieldDefinition {
	return []schema.FieldDefinition{
		{Name: "total_amount", Label: "Total", Type: schema.FieldTypeNumber, ApplicableTo: schema.ApplicableToBoth},
		{Name: "invoice_date", Label: "Invoice date", Type: schema.FieldTypeDate, ApplicableTo: schema.ApplicableToBoth},
		{Name: "payment_method", Label: "Method", Type: schema.FieldTypeDropdown, Options: []string{"cash", "card", "transfer"}, ApplicableTo: schema.ApplicableToExpense},
		{Name: "client_po", Label: "Client PO", Type: schema.FieldTypeString, ApplicableTo: schema.ApplicableToRevenue},
		{Name: "tax", Label: "Tax", Type: schema.FieldTypeFormula, Expression: "total_amount * 0.18", ApplicableTo: schema.ApplicableToBoth},
	}
}

func validRecord(t *testing.T) *FinanceRecord {
	t.Helper()
	rec, err := NewFinanceRecord(uuid.New(), schema.RecordTypeExpense, uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	rec.Fields = FieldValues{
		"total_amount":   NumberValue(decimal.NewFromInt(120)),
		"invoice_date":   DateValue(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		"payment_method": StringValue("card"),
	}
	return rec
}

func validatorWithHappyLookups(rec *FinanceRecord) (*Validator, *mockCategoryLookup, *mockPartnerLookup) {
	categories := new(mockCategoryLookup)
	partners := new(mockPartnerLookup)
	categories.On("Exists", mock.Anything, rec.OrganizationID, rec.CategoryID).Return(true, nil)
	return NewValidator(categories, partners), categories, partners
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestValidate_ReturnsApplicableDefinitions(t *testing.T) {
	rec := validRecord(t)
	validator, _, _ := validatorWithHappyLookups(rec)

	applicable, err := validator.Validate(context.Background(), rec, registrySnapshot())
	require.NoError(t, err)

	names := make([]string, 0, len(applicable))
	for _, def := range applicable {
		names = append(names, def.Name)
	}
	assert.ElementsMatch(t, []string{"total_amount", "invoice_date", "payment_method", "tax"}, names)
}

func TestValidate_UnknownCategory(t *testing.T) {
	rec := validRecord(t)
	categories := new(mockCategoryLookup)
	categories.On("Exists", mock.Anything, rec.OrganizationID, rec.CategoryID).Return(false, nil)
	validator := NewValidator(categories, new(mockPartnerLookup))

	_, err := validator.Validate(context.Background(), rec, registrySnapshot())
	assertCode(t, err, shared.ErrCodeReference)
}

func TestValidate_PartnerChecks(t *testing.T) {
	t.Run("missing partner", func(t *testing.T) {
		rec := validRecord(t)
		partnerID := uuid.New()
		rec.SetPartner(&partnerID)

		validator, _, partners := validatorWithHappyLookups(rec)
		partners.On("Kind", mock.Anything, rec.OrganizationID, partnerID).Return(PartnerKind(""), shared.ErrNotFound)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeReference)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		rec := validRecord(t)
		partnerID := uuid.New()
		rec.SetPartner(&partnerID)

		validator, _, partners := validatorWithHappyLookups(rec)
		partners.On("Kind", mock.Anything, rec.OrganizationID, partnerID).Return(PartnerKindClient, nil)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeValidation)
	})

	t.Run("matching vendor", func(t *testing.T) {
		rec := validRecord(t)
		partnerID := uuid.New()
		rec.SetPartner(&partnerID)

		validator, _, partners := validatorWithHappyLookups(rec)
		partners.On("Kind", mock.Anything, rec.OrganizationID, partnerID).Return(PartnerKindVendor, nil)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assert.NoError(t, err)
	})
}

func TestValidate_FieldChecks(t *testing.T) {
	t.Run("unknown field name", func(t *testing.T) {
		rec := validRecord(t)
		rec.Fields["no_such_field"] = StringValue("x")
		validator, _, _ := validatorWithHappyLookups(rec)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeReference)
	})

	t.Run("inapplicable field", func(t *testing.T) {
		rec := validRecord(t)
		rec.Fields["client_po"] = StringValue("PO-1")
		validator, _, _ := validatorWithHappyLookups(rec)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeValidation)
	})

	t.Run("type mismatch", func(t *testing.T) {
		rec := validRecord(t)
		rec.Fields["total_amount"] = StringValue("a lot")
		validator, _, _ := validatorWithHappyLookups(rec)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeType)
	})

	t.Run("dropdown option membership", func(t *testing.T) {
		rec := validRecord(t)
		rec.Fields["payment_method"] = StringValue("crypto")
		validator, _, _ := validatorWithHappyLookups(rec)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assertCode(t, err, shared.ErrCodeValidation)
	})

	t.Run("formula value accepted as input", func(t *testing.T) {
		// Caller-supplied formula values pass validation; the evaluator
		// overwrites them anyway.
		rec := validRecord(t)
		rec.Fields["tax"] = StringValue("will be overwritten")
		validator, _, _ := validatorWithHappyLookups(rec)

		_, err := validator.Validate(context.Background(), rec, registrySnapshot())
		assert.NoError(t, err)
	})
}
