package identity

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Principal is the resolved session identity threaded explicitly through
// every operation. It carries everything access checks need: the acting
// user, the owning agency, the role, and (for CLIENT users) the bound
// client that limits visibility.
type Principal struct {
	UserID   uuid.UUID
	AgencyID uuid.UUID
	Role     Role
	ClientID *uuid.UUID
}

// Valid reports whether the principal carries a usable identity.
// A principal without an agency cannot be scoped to any data.
func (p Principal) Valid() bool {
	return p.UserID != uuid.Nil && p.AgencyID != uuid.Nil && p.Role.IsValid()
}

// RequireSession fails with UNAUTHORIZED when the principal is not usable.
// Every operation calls this before any role or scope check.
func RequireSession(p Principal) error {
	if !p.Valid() {
		return shared.ErrUnauthorized
	}
	return nil
}

// RequireRole fails with FORBIDDEN when the principal's role is not in the
// allowed set.
func RequireRole(p Principal, allowed ...Role) error {
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return shared.ErrForbidden
}

// EnforceClientScope fails with FORBIDDEN when a CLIENT-role principal
// targets a client other than its own bound one. Staff roles pass through.
func EnforceClientScope(p Principal, targetClientID uuid.UUID) error {
	if p.Role != RoleClient {
		return nil
	}
	if p.ClientID == nil || *p.ClientID != targetClientID {
		return shared.ErrForbidden
	}
	return nil
}

// AgencyScope returns the mandatory tenant filter for the principal.
// Fails with UNAUTHORIZED if the principal has no agency; unreachable
// after RequireSession, kept as a guard against misuse.
func AgencyScope(p Principal) (uuid.UUID, error) {
	if p.AgencyID == uuid.Nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return p.AgencyID, nil
}
