package model

import "errors"

var (
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrInvalidProtocol      = errors.New("protocol must be protocol_1 or protocol_2")
	ErrInvalidState         = errors.New("state must be pending, in_progress, or completed")
	ErrPhaseScoreOutOfRange = errors.New("phase score must be between 0 and 20")
)

// ErrorCode is the stable wire identifier for evaluation errors.
type ErrorCode string

const (
	CodeEvaluationNotFound ErrorCode = "EVALUATION_NOT_FOUND"
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps a domain error to its wire ErrorCode.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrEvaluationNotFound):
		return CodeEvaluationNotFound
	case errors.Is(err, ErrInvalidProtocol), errors.Is(err, ErrInvalidState), errors.Is(err, ErrPhaseScoreOutOfRange):
		return CodeValidationError
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a client-safe message for a domain error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
