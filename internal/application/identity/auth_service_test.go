package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/identity"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/auth"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/config"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByCode(ctx context.Context, code string) (*identity.Organization, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, organizationID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, organizationID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, organizationID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestAuthService(orgRepo *MockOrganizationRepository, userRepo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "projectx-test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(orgRepo, userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(nil, shared.ErrNotFound)
	orgRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Organization")).Return(nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := service.Register(context.Background(), RegisterInput{
		OrganizationCode: "acme",
		OrganizationName: "Acme Traders",
		Email:            "owner@acme.example",
		Password:         "super-secret-1",
		DisplayName:      "Owner",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.OrganizationID)
	assert.NotEqual(t, uuid.Nil, result.UserID)

	orgRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateCode(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	existing, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(existing, nil)

	_, err = service.Register(context.Background(), RegisterInput{
		OrganizationCode: "ACME",
		OrganizationName: "Another Acme",
		Email:            "owner@acme.example",
		Password:         "super-secret-1",
	})
	require.Error(t, err)
	orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	org, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "owner@acme.example", "super-secret-1", identity.UserRoleAdmin)
	require.NoError(t, err)

	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(org, nil)
	userRepo.On("FindByEmail", mock.Anything, org.ID, "owner@acme.example").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	result, err := service.Login(context.Background(), LoginInput{
		OrganizationCode: "acme",
		Email:            "Owner@acme.example",
		Password:         "super-secret-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "admin", result.User.Role)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	org, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "owner@acme.example", "super-secret-1", identity.UserRoleAdmin)
	require.NoError(t, err)

	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(org, nil)
	userRepo.On("FindByEmail", mock.Anything, org.ID, "owner@acme.example").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	_, err = service.Login(context.Background(), LoginInput{
		OrganizationCode: "ACME",
		Email:            "owner@acme.example",
		Password:         "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	org, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "owner@acme.example", "super-secret-1", identity.UserRoleAdmin)
	require.NoError(t, err)

	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(org, nil)
	userRepo.On("FindByEmail", mock.Anything, org.ID, "owner@acme.example").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	input := LoginInput{OrganizationCode: "ACME", Email: "owner@acme.example", Password: "wrong"}
	for i := 0; i < 5; i++ {
		_, err = service.Login(context.Background(), input)
		require.Error(t, err)
	}

	assert.Equal(t, identity.UserStatusLocked, user.Status)

	// Even the right password is rejected while locked
	input.Password = "super-secret-1"
	_, err = service.Login(context.Background(), input)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_RefreshToken(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	org, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "owner@acme.example", "super-secret-1", identity.UserRoleAdmin)
	require.NoError(t, err)

	orgRepo.On("FindByCode", mock.Anything, "ACME").Return(org, nil)
	userRepo.On("FindByEmail", mock.Anything, org.ID, "owner@acme.example").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	login, err := service.Login(context.Background(), LoginInput{
		OrganizationCode: "ACME",
		Email:            "owner@acme.example",
		Password:         "super-secret-1",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	_, err := service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: "garbage",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	userRepo := new(MockUserRepository)
	service := newTestAuthService(orgRepo, userRepo)

	org, err := identity.NewOrganization("ACME", "Acme Traders")
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "owner@acme.example", "super-secret-1", identity.UserRoleAdmin)
	require.NoError(t, err)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	err = service.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "super-secret-1",
		NewPassword: "even-more-secret-2",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("even-more-secret-2"))
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewUserService(userRepo, zap.NewNop())
	orgID := uuid.New()

	userRepo.On("ExistsByEmail", mock.Anything, orgID, "member@acme.example").Return(true, nil)

	_, err := service.Create(context.Background(), CreateUserInput{
		OrganizationID: orgID,
		Email:          "member@acme.example",
		Password:       "password-123",
	})
	require.Error(t, err)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Create_DefaultsToMember(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewUserService(userRepo, zap.NewNop())
	orgID := uuid.New()

	userRepo.On("ExistsByEmail", mock.Anything, orgID, "member@acme.example").Return(false, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	info, err := service.Create(context.Background(), CreateUserInput{
		OrganizationID: orgID,
		Email:          "member@acme.example",
		Password:       "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "member", info.Role)
}
