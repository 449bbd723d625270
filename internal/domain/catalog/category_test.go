package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
)

func TestNewCategory(t *testing.T) {
	orgID := uuid.New()

	category, err := NewCategory(orgID, "Office supplies", schema.ApplicableToExpense)
	require.NoError(t, err)
	assert.Equal(t, orgID, category.OrganizationID)
	assert.Equal(t, CategoryStatusActive, category.Status)
	assert.True(t, category.AcceptsRecordType(schema.RecordTypeExpense))
	assert.False(t, category.AcceptsRecordType(schema.RecordTypeRevenue))

	events := category.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
}

func TestNewCategory_DefaultsToBoth(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Consulting", "")
	require.NoError(t, err)
	assert.True(t, category.AcceptsRecordType(schema.RecordTypeExpense))
	assert.True(t, category.AcceptsRecordType(schema.RecordTypeRevenue))
}

func TestNewCategory_Validation(t *testing.T) {
	_, err := NewCategory(uuid.New(), "", schema.ApplicableToBoth)
	assert.Error(t, err)

	_, err = NewCategory(uuid.New(), "Travel", "sideways")
	assert.Error(t, err)
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Travel", schema.ApplicableToExpense)
	require.NoError(t, err)
	version := category.GetVersion()

	require.NoError(t, category.Update("Travel & lodging", "flights, hotels", schema.ApplicableToBoth))
	assert.Equal(t, "Travel & lodging", category.Name)
	assert.Equal(t, version+1, category.GetVersion())

	assert.Error(t, category.Update("", "", schema.ApplicableToBoth))
}

func TestCategory_StatusTransitions(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Travel", schema.ApplicableToExpense)
	require.NoError(t, err)

	assert.Error(t, category.Activate())
	require.NoError(t, category.Deactivate())
	assert.False(t, category.IsActive())
	assert.Error(t, category.Deactivate())
	require.NoError(t, category.Activate())
	assert.True(t, category.IsActive())
}
