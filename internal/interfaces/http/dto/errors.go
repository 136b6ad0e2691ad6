package dto

import "net/http"

// Error codes exposed by the API. Domain error codes map onto these;
// unknown codes fall back to 500.
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeLedgerImbalance   = "ERR_LEDGER_IMBALANCE"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeLedgerImbalance:   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an API error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping translates domain error codes to API codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"LEDGER_IMBALANCE":     ErrCodeLedgerImbalance,

	// Input-shaped domain rejections all surface as validation failures
	"INVALID_INPUT":         ErrCodeValidation,
	"INVALID_QUANTITY":      ErrCodeValidation,
	"INVALID_UNIT_COST":     ErrCodeValidation,
	"INVALID_BATCH_NO":      ErrCodeValidation,
	"INVALID_BATCH_LIST":    ErrCodeValidation,
	"BATCH_SKU_MISMATCH":    ErrCodeValidation,
	"INVALID_MOVEMENT_TYPE": ErrCodeValidation,
	"INVALID_SKU_CODE":      ErrCodeValidation,
	"INVALID_SKU_NAME":      ErrCodeValidation,
	"INVALID_BRAND_CODE":    ErrCodeValidation,
	"INVALID_STOCK_POLICY":  ErrCodeValidation,
	"INVALID_SHELF_LIFE":    ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes without a mapping pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
