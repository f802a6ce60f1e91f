package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit timestamps every persisted
// record shares. IDs are generated application-side so an aggregate is
// addressable before its first save.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity generates a fresh identity with both timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the update timestamp after a mutation
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
