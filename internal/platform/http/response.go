package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	ErrorCode    string   `json:"error_code"`
	ErrorMessage string   `json:"error_message"`
	Details      []string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// RespondWithError sends a standardized error response
func RespondWithError(c *gin.Context, statusCode int, errorCode, errorMessage string) {
	c.JSON(statusCode, ErrorResponse{
		ErrorCode:    errorCode,
		ErrorMessage: errorMessage,
	})
}

// RespondWithErrorDetails sends a standardized error response carrying the
// `details` field (e.g. the list of missing required document types).
func RespondWithErrorDetails(c *gin.Context, statusCode int, errorCode, errorMessage string, details []string) {
	c.JSON(statusCode, ErrorResponse{
		ErrorCode:    errorCode,
		ErrorMessage: errorMessage,
		Details:      details,
	})
}

// codeStatus maps the machine-readable error codes shared across modules
// to their HTTP status. Module-specific errors not listed here fall back
// to 500 — every handler calls StatusForCode instead of building
// its own if/else chain.
var codeStatus = map[string]int{
	"UNAUTHENTICATED":               401,
	"FORBIDDEN":                     403,
	"ACCOUNT_BLOCKED":               403,
	"ACCOUNT_PENDING":               403,
	"NOT_FOUND":                     404,
	"OFFER_NOT_FOUND":               404,
	"APPLICATION_NOT_FOUND":         404,
	"USER_NOT_FOUND":                404,
	"ACCESS_REQUEST_NOT_FOUND":      404,
	"DUPLICATE_APPLICATION":         409,
	"OFFER_CLOSED":                  409,
	"INVALID_STATUS_TRANSITION":     409,
	"USER_ALREADY_EXISTS":           409,
	"MATRICULE_ALREADY_EXISTS":      409,
	"FILE_TOO_LARGE":                413,
	"UNSUPPORTED_TYPE":              422,
	"INVALID_FORMAT":                422,
	"UNKNOWN_DOCUMENT_TYPE":         422,
	"MISSING_REQUIRED_DOCUMENT":     422,
	"DUPLICATE_REQUIRED_DOCUMENT":   422,
	"MTP_ANSWER_SHAPE_MISMATCH":     422,
	"VALIDATION_ERROR":              422,
	"OFFER_NOT_VISIBLE":             403,
	"INVALID_CREDENTIALS":           401,
	"INVALID_EMAIL":                 400,
	"INVALID_PASSWORD":              400,
	"TOKEN_INVALID":                 401,
	"TOKEN_EXPIRED":                 401,
}

// StatusForCode returns the HTTP status for a machine-readable error code,
// defaulting to 500 internal_error, which never leaks internals, for
// anything not in the table.
func StatusForCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithSuccess sends a standardized success response
func RespondWithSuccess(c *gin.Context, statusCode int, data interface{}) {
	if data == nil {
		c.JSON(statusCode, gin.H{})
		return
	}
	c.JSON(statusCode, SuccessResponse{Data: data})
}

// RespondWithData sends data directly without wrapping
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Health response structure
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

// RespondWithHealth sends a health check response
func RespondWithHealth(c *gin.Context, services map[string]string) {
	status := "healthy"
	for _, serviceStatus := range services {
		if serviceStatus != "up" {
			status = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:   status,
		Version:  "1.0.0",
		Services: services,
	})
}
