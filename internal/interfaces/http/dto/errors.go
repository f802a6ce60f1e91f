package dto

// Stable error codes returned in the API error envelope. Clients match on
// these instead of HTTP status text.
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists      = "ERR_ALREADY_EXISTS"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
	ErrCodePayloadTooLarge    = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:         400,
	ErrCodeNotFound:           404,
	ErrCodeAlreadyExists:      409,
	ErrCodeUnauthorized:       401,
	ErrCodeForbidden:          403,
	ErrCodeConflict:           409,
	ErrCodeInvalidState:       422,
	ErrCodeRateLimited:        429,
	ErrCodePayloadTooLarge:    413,
	ErrCodeInternal:           500,
	ErrCodeServiceUnavailable: 503,
}

// GetHTTPStatus returns the HTTP status for an API error code, defaulting
// to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return 500
}

// DomainErrorCodeMapping translates domain error codes into API error codes.
// Domain validation codes are intentionally fine grained; the API surface
// collapses them into a single validation code and carries the original
// message through.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":  ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
	"INVALID_STATE":        ErrCodeInvalidState,
	"RATE_LIMITED":         ErrCodeRateLimited,
	"INTERNAL_ERROR":       ErrCodeInternal,

	"VALIDATION_ERROR":        ErrCodeValidation,
	"INVALID_INPUT":           ErrCodeValidation,
	"INVALID_NAME":            ErrCodeValidation,
	"INVALID_PHONE":           ErrCodeValidation,
	"INVALID_EMAIL":           ErrCodeValidation,
	"INVALID_CONTACT":         ErrCodeValidation,
	"INVALID_CONTENT":         ErrCodeValidation,
	"INVALID_PACKAGE":         ErrCodeValidation,
	"INVALID_STATUS":          ErrCodeValidation,
	"INVALID_SOURCE":          ErrCodeValidation,
	"INVALID_AMOUNT":          ErrCodeValidation,
	"INVALID_CURRENCY":        ErrCodeValidation,
	"INVALID_CYCLE":           ErrCodeValidation,
	"INVALID_SERVICE_TYPE":    ErrCodeValidation,
	"INVALID_DELIVERY_STATUS": ErrCodeValidation,
	"INVALID_ROLE":            ErrCodeValidation,
	"INVALID_PASSWORD":        ErrCodeValidation,
	"INVALID_MESSAGE_TYPE":    ErrCodeValidation,
	"INVALID_EVENT_TYPE":      ErrCodeValidation,
	"INVALID_DETAILS":         ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to its API error code.
// Codes already in ERR_ form pass through unchanged.
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
