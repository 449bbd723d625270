package record

import (
	"fmt"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// Conventional field names for the partial-payment bound. When a record
// carries both, the paid amount may never exceed the total.
const (
	FieldNameTotalAmount = "total_amount"
	FieldNameAmountPaid  = "amount_paid"
)

// CheckInvariants enforces the final-amount and partial-payment invariants
// against the applicable definitions. It runs after formula evaluation on
// every write; a failure aborts the operation before persistence.
func CheckInvariants(rec *FinanceRecord, applicable []schema.FieldDefinition) error {
	finalDef, err := schema.FinalAmountField(applicable, rec.Type)
	if err != nil {
		return err
	}

	finalValue, ok := rec.Fields[finalDef.Name]
	if !ok {
		return shared.NewFieldError(shared.ErrCodeValidation,
			fmt.Sprintf("Final-amount field %q is missing from the record", finalDef.Name), finalDef.Name)
	}
	if _, numeric := finalValue.Number(); !numeric {
		return shared.NewFieldError(shared.ErrCodeType,
			fmt.Sprintf("Final-amount field %q must hold a numeric value", finalDef.Name), finalDef.Name)
	}

	total, hasTotal := rec.Fields[FieldNameTotalAmount]
	paid, hasPaid := rec.Fields[FieldNameAmountPaid]
	if hasTotal && hasPaid {
		totalNum, totalOK := total.Number()
		paidNum, paidOK := paid.Number()
		if totalOK && paidOK && paidNum.GreaterThan(totalNum) {
			return shared.NewFieldError(shared.ErrCodeValidation,
				fmt.Sprintf("Paid amount %s exceeds total amount %s", paidNum, totalNum), FieldNameAmountPaid)
		}
	}

	return nil
}
