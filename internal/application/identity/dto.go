package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/identity"
)

// RegisterInput contains the input for organization registration. It
// bootstraps a new organization together with its first admin user.
type RegisterInput struct {
	OrganizationCode string
	OrganizationName string
	Email            string
	Password         string
	DisplayName      string
}

// RegisterResult contains the result of organization registration
type RegisterResult struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

// LoginInput contains the input for user login
type LoginInput struct {
	OrganizationCode string
	Email            string
	Password         string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	DisplayName    string
	Role           string
	Status         string
	LastLoginAt    *time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	TokenJTI       string // JWT ID for blacklisting (optional)
	TokenTTL       time.Duration
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for an admin creating a member
type CreateUserInput struct {
	OrganizationID uuid.UUID
	Email          string
	Password       string
	DisplayName    string
	Role           string
}

// SetUserRoleInput contains the input for a role change
type SetUserRoleInput struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           string
}

// ToUserInfo converts a domain user to UserInfo
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:             user.ID,
		OrganizationID: user.OrganizationID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		Role:           string(user.Role),
		Status:         string(user.Status),
		LastLoginAt:    user.LastLoginAt,
	}
}
