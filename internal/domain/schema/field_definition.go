package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordType identifies which side of the ledger a finance record sits on.
// Field definitions are scoped to one record type or to both.
type RecordType string

const (
	RecordTypeExpense RecordType = "expense"
	RecordTypeRevenue RecordType = "revenue"
)

// IsValid checks if the record type is valid
func (t RecordType) IsValid() bool {
	return t == RecordTypeExpense || t == RecordTypeRevenue
}

// String returns the string representation of RecordType
func (t RecordType) String() string {
	return string(t)
}

// Applicability declares which record types a field definition applies to
type Applicability string

const (
	ApplicableToExpense Applicability = "expense"
	ApplicableToRevenue Applicability = "revenue"
	ApplicableToBoth    Applicability = "both"
)

// IsValid checks if the applicability is valid
func (a Applicability) IsValid() bool {
	return a == ApplicableToExpense || a == ApplicableToRevenue || a == ApplicableToBoth
}

// AppliesTo reports whether a definition with this applicability is usable
// on records of the given type
func (a Applicability) AppliesTo(recordType RecordType) bool {
	return a == ApplicableToBoth || Applicability(recordType) == a
}

// FieldType is the value type of a field definition
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeFormula  FieldType = "formula"
	FieldTypeBoolean  FieldType = "boolean"
)

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeDate,
		FieldTypeDropdown, FieldTypeFormula, FieldTypeBoolean:
		return true
	}
	return false
}

// ConfigKeyFinalAmount marks the definition whose value is the record's
// settlement amount. Exactly one applicable definition per record type may
// carry it.
const ConfigKeyFinalAmount = "isFinalAmount"

// FieldConfig holds free-form per-definition configuration
type FieldConfig map[string]any

// Value implements driver.Valuer for database storage as JSONB
func (c FieldConfig) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *FieldConfig) Scan(value any) error {
	if value == nil {
		*c = FieldConfig{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FieldConfig", value)
	}
	if len(data) == 0 {
		*c = FieldConfig{}
		return nil
	}
	return json.Unmarshal(data, c)
}

// OptionList holds the allowed values of a dropdown definition
type OptionList []string

// Value implements driver.Valuer for database storage as JSONB
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner for database retrieval
func (o *OptionList) Scan(value any) error {
	if value == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OptionList", value)
	}
	if len(data) == 0 {
		*o = nil
		return nil
	}
	return json.Unmarshal(data, o)
}

// IsFinalAmount reports whether the config marks the final-amount field
func (c FieldConfig) IsFinalAmount() bool {
	v, ok := c[ConfigKeyFinalAmount]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Field names are used as map keys in record field data and as identifiers
// in formula expressions, so they are restricted to identifier characters.
var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// FieldDefinition is the aggregate root for one named, typed schema entry
// an organization's finance records may carry.
type FieldDefinition struct {
	shared.OrgAggregateRoot
	Name         string        `json:"name" gorm:"type:varchar(100);not null;index"`
	Label        string        `json:"label" gorm:"type:varchar(200);not null"`
	Type         FieldType     `json:"type" gorm:"type:varchar(20);not null"`
	Options      OptionList    `json:"options,omitempty" gorm:"type:jsonb"`
	Expression   string        `json:"expression,omitempty" gorm:"type:text"`
	ApplicableTo Applicability `json:"applicableTo" gorm:"type:varchar(20);not null;default:'both'"`
	Config       FieldConfig   `json:"config,omitempty" gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (FieldDefinition) TableName() string {
	return "field_definitions"
}

// NewFieldDefinition creates a new field definition, enforcing per-type
// constraints: dropdown requires options, formula requires an expression.
func NewFieldDefinition(organizationID uuid.UUID, name, label string, fieldType FieldType, applicableTo Applicability) (*FieldDefinition, error) {
	if err := validateFieldName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Field label cannot be empty")
	}
	if !fieldType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FIELD_TYPE", fmt.Sprintf("Field type %q is not valid", fieldType))
	}
	if applicableTo == "" {
		applicableTo = ApplicableToBoth
	}
	if !applicableTo.IsValid() {
		return nil, shared.NewDomainError("INVALID_APPLICABILITY", fmt.Sprintf("Applicability %q is not valid", applicableTo))
	}

	def := &FieldDefinition{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             name,
		Label:            label,
		Type:             fieldType,
		ApplicableTo:     applicableTo,
		Config:           FieldConfig{},
	}

	def.AddDomainEvent(NewFieldDefinitionCreatedEvent(def))

	return def, nil
}

// SetOptions sets the dropdown options. Valid only for dropdown definitions.
func (d *FieldDefinition) SetOptions(options []string) error {
	if d.Type != FieldTypeDropdown {
		return shared.NewFieldError(shared.ErrCodeValidation, "Options are only valid for dropdown fields", d.Name)
	}
	if len(options) == 0 {
		return shared.NewFieldError(shared.ErrCodeValidation, "Dropdown fields require at least one option", d.Name)
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return shared.NewFieldError(shared.ErrCodeValidation, "Dropdown options cannot be blank", d.Name)
		}
		if _, dup := seen[opt]; dup {
			return shared.NewFieldError(shared.ErrCodeValidation, fmt.Sprintf("Duplicate dropdown option %q", opt), d.Name)
		}
		seen[opt] = struct{}{}
	}
	d.Options = options
	d.UpdatedAt = time.Now()
	return nil
}

// SetExpression sets the formula expression. Valid only for formula definitions.
func (d *FieldDefinition) SetExpression(expression string) error {
	if d.Type != FieldTypeFormula {
		return shared.NewFieldError(shared.ErrCodeValidation, "An expression is only valid for formula fields", d.Name)
	}
	if strings.TrimSpace(expression) == "" {
		return shared.NewFieldError(shared.ErrCodeValidation, "Formula fields require a non-empty expression", d.Name)
	}
	d.Expression = expression
	d.UpdatedAt = time.Now()
	return nil
}

// SetConfig replaces the free-form configuration map
func (d *FieldDefinition) SetConfig(config FieldConfig) {
	if config == nil {
		config = FieldConfig{}
	}
	d.Config = config
	d.UpdatedAt = time.Now()
}

// MarkFinalAmount flags this definition as the record's settlement amount.
// Only number and formula definitions can carry the settlement amount.
func (d *FieldDefinition) MarkFinalAmount() error {
	if d.Type != FieldTypeNumber && d.Type != FieldTypeFormula {
		return shared.NewFieldError(shared.ErrCodeConfig, "Only number and formula fields can be the final amount", d.Name)
	}
	if d.Config == nil {
		d.Config = FieldConfig{}
	}
	d.Config[ConfigKeyFinalAmount] = true
	d.UpdatedAt = time.Now()
	return nil
}

// IsFinalAmount reports whether this definition is the settlement amount field
func (d *FieldDefinition) IsFinalAmount() bool {
	return d.Config.IsFinalAmount()
}

// Update changes the label and applicability of the definition. Name and
// type are immutable once created: records already reference the name.
func (d *FieldDefinition) Update(label string, applicableTo Applicability) error {
	if strings.TrimSpace(label) == "" {
		return shared.NewDomainError("INVALID_LABEL", "Field label cannot be empty")
	}
	if !applicableTo.IsValid() {
		return shared.NewDomainError("INVALID_APPLICABILITY", fmt.Sprintf("Applicability %q is not valid", applicableTo))
	}

	d.Label = label
	d.ApplicableTo = applicableTo
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewFieldDefinitionUpdatedEvent(d))

	return nil
}

// Validate checks the definition's per-type constraints as a whole, used
// before persisting
func (d *FieldDefinition) Validate() error {
	switch d.Type {
	case FieldTypeDropdown:
		if len(d.Options) == 0 {
			return shared.NewFieldError(shared.ErrCodeValidation, "Dropdown fields require at least one option", d.Name)
		}
	case FieldTypeFormula:
		if strings.TrimSpace(d.Expression) == "" {
			return shared.NewFieldError(shared.ErrCodeValidation, "Formula fields require a non-empty expression", d.Name)
		}
	}
	return nil
}

func validateFieldName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_FIELD_NAME", "Field name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_FIELD_NAME", "Field name cannot exceed 100 characters")
	}
	if !fieldNamePattern.MatchString(name) {
		return shared.NewDomainError("INVALID_FIELD_NAME", "Field name must start with a letter or underscore and contain only letters, digits and underscores")
	}
	return nil
}

// DefinitionsFor filters definitions down to those applicable to the given
// record type, preserving order.
func DefinitionsFor(defs []FieldDefinition, recordType RecordType) []FieldDefinition {
	applicable := make([]FieldDefinition, 0, len(defs))
	for _, d := range defs {
		if d.ApplicableTo.AppliesTo(recordType) {
			applicable = append(applicable, d)
		}
	}
	return applicable
}

// FinalAmountField returns the single definition marked as final amount in
// the given applicable set. Zero or multiple marked definitions is an
// organization configuration fault.
func FinalAmountField(defs []FieldDefinition, recordType RecordType) (*FieldDefinition, error) {
	var found *FieldDefinition
	for i := range defs {
		if !defs[i].ApplicableTo.AppliesTo(recordType) {
			continue
		}
		if defs[i].IsFinalAmount() {
			if found != nil {
				return nil, shared.NewDomainError(shared.ErrCodeConfig,
					fmt.Sprintf("Multiple final-amount fields defined for %s records: %s, %s", recordType, found.Name, defs[i].Name))
			}
			found = &defs[i]
		}
	}
	if found == nil {
		return nil, shared.NewDomainError(shared.ErrCodeConfig,
			fmt.Sprintf("No final-amount field defined for %s records", recordType))
	}
	return found, nil
}
