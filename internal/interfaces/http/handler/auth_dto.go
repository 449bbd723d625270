package handler

// RegisterRequest bootstraps an organization with its first admin user
type RegisterRequest struct {
	OrganizationCode string `json:"organization_code" binding:"required,min=2,max=50"`
	OrganizationName string `json:"organization_name" binding:"required,min=1,max=200"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	DisplayName      string `json:"display_name" binding:"omitempty,max=100"`
}

// LoginRequest authenticates a user within an organization
type LoginRequest struct {
	OrganizationCode string `json:"organization_code" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest changes the authenticated user's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenPairResponse carries an issued token pair
type TokenPairResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at"`
	TokenType             string `json:"token_type"`
}
