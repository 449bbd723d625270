package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/identity"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// UserService handles member administration within an organization
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create adds a member to the organization
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.OrganizationID, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists in the organization")
	}

	role := identity.UserRole(input.Role)
	if role == "" {
		role = identity.UserRoleMember
	}

	user, err := identity.NewUser(input.OrganizationID, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", input.OrganizationID.String()))

	info := ToUserInfo(user)
	return &info, nil
}

// GetByID retrieves a member of the organization
func (s *UserService) GetByID(ctx context.Context, organizationID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByIDForOrg(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// List retrieves all members of the organization
func (s *UserService) List(ctx context.Context, organizationID uuid.UUID) ([]UserInfo, error) {
	users, err := s.userRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]UserInfo, len(users))
	for i := range users {
		out[i] = ToUserInfo(&users[i])
	}
	return out, nil
}

// SetRole changes a member's role
func (s *UserService) SetRole(ctx context.Context, input SetUserRoleInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByIDForOrg(ctx, input.OrganizationID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.SetRole(identity.UserRole(input.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// Deactivate deactivates a member
func (s *UserService) Deactivate(ctx context.Context, organizationID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForOrg(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}

// Unlock clears a member's login lockout
func (s *UserService) Unlock(ctx context.Context, organizationID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForOrg(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	user.Unlock()
	return s.userRepo.Save(ctx, user)
}
