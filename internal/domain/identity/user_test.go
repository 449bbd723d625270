package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	orgID := uuid.New()

	user, err := NewUser(orgID, "Finance@Example.COM", "s3cret-pass", UserRoleMember)
	require.NoError(t, err)
	assert.Equal(t, "finance@example.com", user.Email)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, user.VerifyPassword("s3cret-pass"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestNewUser_Validation(t *testing.T) {
	orgID := uuid.New()

	_, err := NewUser(orgID, "not-an-email", "s3cret-pass", UserRoleMember)
	assert.Error(t, err)

	_, err = NewUser(orgID, "a@b.example", "short", UserRoleMember)
	assert.Error(t, err)

	_, err = NewUser(orgID, "a@b.example", "s3cret-pass", "owner")
	assert.Error(t, err)
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.example", "original-pass", UserRoleAdmin)
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("wrong", "next-password"))
	require.NoError(t, user.ChangePassword("original-pass", "next-password"))
	assert.True(t, user.VerifyPassword("next-password"))
	assert.False(t, user.VerifyPassword("original-pass"))
}

func TestUser_LockoutAfterRepeatedFailures(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.example", "s3cret-pass", UserRoleMember)
	require.NoError(t, err)

	for i := 0; i < maxFailedAttempts; i++ {
		assert.True(t, user.CanLogin() || i > 0)
		user.RecordLoginFailure()
	}

	assert.Equal(t, UserStatusLocked, user.Status)
	assert.False(t, user.CanLogin())

	user.Unlock()
	assert.Equal(t, UserStatusActive, user.Status)
	assert.True(t, user.CanLogin())

	user.RecordLoginSuccess()
	assert.Zero(t, user.FailedAttempts)
	assert.NotNil(t, user.LastLoginAt)
}

func TestUser_Roles(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.example", "s3cret-pass", UserRoleMember)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())

	require.NoError(t, user.SetRole(UserRoleAdmin))
	assert.True(t, user.IsAdmin())

	assert.Error(t, user.SetRole("superuser"))
}

func TestNewOrganization(t *testing.T) {
	org, err := NewOrganization("acme-01", "Acme Industries")
	require.NoError(t, err)
	assert.Equal(t, "ACME-01", org.Code)
	assert.True(t, org.IsActive())

	_, err = NewOrganization("", "Acme")
	assert.Error(t, err)
	_, err = NewOrganization("bad code", "Acme")
	assert.Error(t, err)
	_, err = NewOrganization("ok", "")
	assert.Error(t, err)
}

func TestOrganization_SuspendAndActivate(t *testing.T) {
	org, err := NewOrganization("acme", "Acme Industries")
	require.NoError(t, err)

	require.NoError(t, org.Suspend())
	assert.False(t, org.IsActive())
	assert.Error(t, org.Suspend())

	require.NoError(t, org.Activate())
	assert.True(t, org.IsActive())
}
