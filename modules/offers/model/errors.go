package model

import "errors"

var (
	ErrOfferNotFound      = errors.New("offer not found")
	ErrOfferNotVisible    = errors.New("offer not visible to caller")
	ErrOfferClosed        = errors.New("offer is not open")
	ErrTitleRequired      = errors.New("offer title is required")
	ErrInvalidContractType = errors.New("invalid contract type")
	ErrInvalidVisibility  = errors.New("invalid visibility")
	ErrInvalidState       = errors.New("invalid offer state")
	ErrInvalidSalaryRange = errors.New("invalid salary range")
	ErrMTPBundleTooLarge  = errors.New("mtp bundle exceeds allowed question count")
	ErrMTPQuestionEmpty   = errors.New("mtp question cannot be empty")
)

// ErrorCode is the machine-readable tag surfaced at the HTTP boundary.
type ErrorCode string

const (
	CodeOfferNotFound       ErrorCode = "OFFER_NOT_FOUND"
	CodeOfferNotVisible     ErrorCode = "OFFER_NOT_VISIBLE"
	CodeOfferClosed         ErrorCode = "OFFER_CLOSED"
	CodeValidationError     ErrorCode = "VALIDATION_ERROR"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to their machine-readable code.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrOfferNotFound):
		return CodeOfferNotFound
	case errors.Is(err, ErrOfferNotVisible):
		return CodeOfferNotVisible
	case errors.Is(err, ErrOfferClosed):
		return CodeOfferClosed
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrInvalidContractType),
		errors.Is(err, ErrInvalidVisibility),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidSalaryRange),
		errors.Is(err, ErrMTPBundleTooLarge),
		errors.Is(err, ErrMTPQuestionEmpty):
		return CodeValidationError
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly message for err.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrOfferNotFound):
		return "Offer not found"
	case errors.Is(err, ErrOfferNotVisible):
		return "You do not have access to this offer"
	case errors.Is(err, ErrOfferClosed):
		return "This offer is not open for applications"
	case errors.Is(err, ErrTitleRequired):
		return "Offer title is required"
	case errors.Is(err, ErrInvalidContractType):
		return "Invalid contract type"
	case errors.Is(err, ErrInvalidVisibility):
		return "Invalid visibility"
	case errors.Is(err, ErrInvalidState):
		return "Invalid offer state"
	case errors.Is(err, ErrInvalidSalaryRange):
		return "Salary range is invalid"
	case errors.Is(err, ErrMTPBundleTooLarge):
		return "MTP bundle exceeds the allowed question count for one or more dimensions"
	case errors.Is(err, ErrMTPQuestionEmpty):
		return "MTP questions cannot be empty"
	default:
		return "Internal server error"
	}
}
