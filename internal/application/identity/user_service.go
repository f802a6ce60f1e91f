package identity

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserService handles account management within an agency
type UserService struct {
	users   identity.UserRepository
	clients crm.ClientRepository
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, clients crm.ClientRepository) *UserService {
	return &UserService{
		users:   users,
		clients: clients,
	}
}

// Create creates a user in the principal's agency. CLIENT users must be
// bound to an existing client of the same agency.
func (s *UserService) Create(ctx context.Context, p identity.Principal, req CreateUserRequest) (*UserResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(p.AgencyID, req.Name, req.Email, hash, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if user.Role == identity.RoleClient {
		if _, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, req.ClientID); err != nil {
			return nil, err
		}
		if err := user.BindClient(req.ClientID); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves all users of the principal's agency
func (s *UserService) List(ctx context.Context, p identity.Principal) ([]UserResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return nil, err
	}

	users, err := s.users.FindAllForAgency(ctx, p.AgencyID)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// ChangeRole updates a user's role. Moving away from CLIENT drops the
// client binding.
func (s *UserService) ChangeRole(ctx context.Context, p identity.Principal, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.RoleOwner); err != nil {
		return nil, err
	}

	user, err := s.users.FindByIDForAgency(ctx, p.AgencyID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if user.Role == identity.RoleClient {
		if _, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, req.ClientID); err != nil {
			return nil, err
		}
		if err := user.BindClient(req.ClientID); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user from the agency
func (s *UserService) Delete(ctx context.Context, p identity.Principal, userID uuid.UUID) error {
	if err := identity.RequireSession(p); err != nil {
		return err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return err
	}

	return s.users.DeleteForAgency(ctx, p.AgencyID, userID)
}
