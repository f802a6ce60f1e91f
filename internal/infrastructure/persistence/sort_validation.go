package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"client_code":   true,
	"business_name": true,
	"status":        true,
	"package_type":  true,
	"start_date":    true,
}

// LeadSortFields contains allowed sort fields for leads
var LeadSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"lead_code":     true,
	"customer_name": true,
	"source":        true,
	"status":        true,
	"converted_at":  true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"amount":     true,
	"status":     true,
	"due_date":   true,
	"paid_at":    true,
}

// ServiceSortFields contains allowed sort fields for services
var ServiceSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"service_type":    true,
	"delivery_status": true,
	"go_live_date":    true,
}

// AutomationLogSortFields contains allowed sort fields for automation logs
var AutomationLogSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"event_type": true,
	"status":     true,
}
