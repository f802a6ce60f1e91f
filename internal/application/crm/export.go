package crm

import (
	"context"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
)

var csvHeader = []string{"Lead Code", "Customer Name", "Phone Number", "Source", "Status", "Created At"}

// ExportCSV renders the caller's own leads as CSV, newest first. Only
// portal users bound to a client can export; every cell is quoted.
func (s *LeadService) ExportCSV(ctx context.Context, p identity.Principal) ([]byte, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if p.ClientID == nil {
		return nil, shared.ErrUnauthorized
	}

	leads, err := s.leads.FindForClient(ctx, p.AgencyID, *p.ClientID)
	if err != nil {
		return nil, err
	}
	return buildLeadsCSV(leads), nil
}

func buildLeadsCSV(leads []crm.Lead) []byte {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for i := range leads {
		writeCSVRow(&b, []string{
			leads[i].LeadCode,
			leads[i].CustomerName,
			leads[i].PhoneNumber,
			string(leads[i].Source),
			string(leads[i].Status),
			leads[i].CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		})
	}
	return []byte(strings.TrimSuffix(b.String(), "\n"))
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
