package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValue_UnmarshalJSON(t *testing.T) {
	var values FieldValues
	payload := `{
		"memo": "quarterly rent",
		"total_amount": 1250.50,
		"invoice_date": "2026-02-01",
		"paid_at": "2026-02-03T10:30:00Z",
		"urgent": true
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &values))

	assert.Equal(t, KindString, values["memo"].Kind)
	assert.Equal(t, "quarterly rent", values["memo"].Str)

	num, ok := values["total_amount"].Number()
	require.True(t, ok)
	assert.True(t, num.Equal(decimal.RequireFromString("1250.50")))

	assert.Equal(t, KindDate, values["invoice_date"].Kind)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), values["invoice_date"].Date)

	assert.Equal(t, KindDate, values["paid_at"].Kind)
	assert.Equal(t, KindBool, values["urgent"].Kind)
	assert.True(t, values["urgent"].Bool)
}

func TestFieldValue_UnmarshalJSON_RejectsStructured(t *testing.T) {
	var v FieldValue
	assert.Error(t, json.Unmarshal([]byte(`null`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"nested": 1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &v))
}

func TestFieldValue_JSONRoundTrip(t *testing.T) {
	original := FieldValues{
		"amount": NumberValue(decimal.RequireFromString("99.95")),
		"note":   StringValue("deposit"),
		"due":    DateValue(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		"closed": BoolValue(false),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	// Numbers must be encoded bare, not as quoted strings, or a reload
	// from storage would downgrade them to string kind.
	assert.Contains(t, string(data), `"amount":99.95`)

	var decoded FieldValues
	require.NoError(t, json.Unmarshal(data, &decoded))

	for name, want := range original {
		got := decoded[name]
		assert.Equal(t, want.Kind, got.Kind, name)
	}
	num, _ := decoded["amount"].Number()
	assert.True(t, num.Equal(decimal.RequireFromString("99.95")))
	assert.True(t, decoded["due"].Date.Equal(original["due"].Date))
}

func TestFieldValues_ScanValue(t *testing.T) {
	original := FieldValues{
		"amount": NumberValue(decimal.NewFromInt(40)),
	}

	raw, err := original.Value()
	require.NoError(t, err)

	var restored FieldValues
	require.NoError(t, restored.Scan(raw))

	num, ok := restored["amount"].Number()
	require.True(t, ok)
	assert.True(t, num.Equal(decimal.NewFromInt(40)))

	var empty FieldValues
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
}

func TestFieldValues_CloneIsIndependent(t *testing.T) {
	original := FieldValues{"a": NumberValue(decimal.NewFromInt(1))}
	clone := original.Clone()
	clone["b"] = NumberValue(decimal.NewFromInt(2))

	_, exists := original["b"]
	assert.False(t, exists)
}
