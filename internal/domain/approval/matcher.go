package approval

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
)

// MatchCondition evaluates whether a single condition holds against the
// record. A path that does not resolve satisfies no operator.
func MatchCondition(cond Condition, rec *record.FinanceRecord) bool {
	if rec == nil {
		return false
	}
	attrValue, ok := resolvePath(cond.Path, rec)
	if !ok {
		return false
	}
	return applyOperator(cond.Operator, attrValue, cond.Value)
}

// MatchAllConditions returns true if ALL conditions hold (AND logic)
func MatchAllConditions(conditions Conditions, rec *record.FinanceRecord) bool {
	if rec == nil || len(conditions) == 0 {
		return false
	}
	for _, cond := range conditions {
		if !MatchCondition(cond, rec) {
			return false
		}
	}
	return true
}

// resolvePath walks the dotted path over the record. The segment "fields"
// is special-cased: the next segment names a field in the record's value
// mapping and resolution stops there, it is never a nested traversal.
func resolvePath(path string, rec *record.FinanceRecord) (any, bool) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 {
		return nil, false
	}

	if segments[0] == "fields" {
		if len(segments) != 2 {
			return nil, false
		}
		value, ok := rec.Fields[segments[1]]
		if !ok {
			return nil, false
		}
		return value.Interface(), true
	}

	if len(segments) != 1 {
		return nil, false
	}
	switch segments[0] {
	case "type":
		return string(rec.Type), true
	case "status":
		return string(rec.Status), true
	case "category_id", "categoryId":
		return rec.CategoryID, true
	case "partner_id", "partnerId":
		if rec.PartnerID == nil {
			return nil, false
		}
		return *rec.PartnerID, true
	case "created_by", "createdBy":
		if rec.CreatedBy == nil {
			return nil, false
		}
		return *rec.CreatedBy, true
	case "organization_id", "organizationId":
		return rec.OrganizationID, true
	}
	return nil, false
}

func applyOperator(op ConditionOperator, attrValue, condValue any) bool {
	switch op {
	case OperatorEquals:
		return operatorEquals(attrValue, condValue)
	case OperatorNotEquals:
		return !operatorEquals(attrValue, condValue)
	case OperatorGreaterThan:
		cmp, ok := compareOrdered(attrValue, condValue)
		return ok && cmp > 0
	case OperatorLessThan:
		cmp, ok := compareOrdered(attrValue, condValue)
		return ok && cmp < 0
	case OperatorGreaterThanEqual:
		cmp, ok := compareOrdered(attrValue, condValue)
		return ok && cmp >= 0
	case OperatorLessThanEqual:
		cmp, ok := compareOrdered(attrValue, condValue)
		return ok && cmp <= 0
	default:
		return false
	}
}

// operatorEquals checks exact equality after normalizing both sides to a
// common type. Numbers compare by value so 10 equals 10.0.
func operatorEquals(attrValue, condValue any) bool {
	if attrValue == nil || condValue == nil {
		return false
	}
	if attrNum, ok := toDecimal(attrValue); ok {
		if condNum, ok := toDecimal(condValue); ok {
			return attrNum.Equal(condNum)
		}
		return false
	}
	if attrTime, ok := toTime(attrValue); ok {
		if condTime, ok := toTime(condValue); ok {
			return attrTime.Equal(condTime)
		}
		return false
	}
	if attrBool, ok := attrValue.(bool); ok {
		condBool, ok := condValue.(bool)
		return ok && attrBool == condBool
	}
	return toString(attrValue) == toString(condValue)
}

// compareOrdered compares the two sides under strict numeric or date
// ordering. Values of any other type do not order and fail the condition.
func compareOrdered(attrValue, condValue any) (int, bool) {
	if attrNum, ok := toDecimal(attrValue); ok {
		if condNum, ok := toDecimal(condValue); ok {
			return attrNum.Cmp(condNum), true
		}
		return 0, false
	}
	if attrTime, ok := toTime(attrValue); ok {
		if condTime, ok := toTime(condValue); ok {
			return attrTime.Compare(condTime), true
		}
		return 0, false
	}
	return 0, false
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case uuid.UUID:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
