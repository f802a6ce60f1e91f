package automation

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogRepository defines the interface for automation log persistence
type LogRepository interface {
	// FindForAgency lists log rows for an agency with pagination
	FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[Log], error)

	// FindForLead lists log rows related to a lead, newest first
	FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]Log, error)

	// Save appends a log row
	Save(ctx context.Context, log *Log) error
}
