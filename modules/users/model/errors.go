package model

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when a user with the same email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrMatriculeAlreadyExists is returned when the given matricule is already taken
	ErrMatriculeAlreadyExists = errors.New("matricule already exists")

	// ErrInvalidCredentials is returned when credentials are invalid
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountBlocked is returned when a blocked account attempts to log in
	ErrAccountBlocked = errors.New("account blocked")

	// ErrAccountPending is returned when a pending account attempts a gated action
	ErrAccountPending = errors.New("account pending activation")

	// ErrInvalidEmail is returned when email format is invalid
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when password is invalid
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidProfile is returned when a CandidateProfile violates its invariants
	ErrInvalidProfile = errors.New("invalid candidate profile")

	// ErrAccessRequestNotFound is returned when an access request is not found
	ErrAccessRequestNotFound = errors.New("access request not found")
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	CodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	CodeUserAlreadyExists     ErrorCode = "USER_ALREADY_EXISTS"
	CodeMatriculeAlreadyExists ErrorCode = "MATRICULE_ALREADY_EXISTS"
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountBlocked        ErrorCode = "ACCOUNT_BLOCKED"
	CodeAccountPending        ErrorCode = "ACCOUNT_PENDING"
	CodeInvalidEmail          ErrorCode = "INVALID_EMAIL"
	CodeInvalidPassword       ErrorCode = "INVALID_PASSWORD"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
	CodeUnauthenticated       ErrorCode = "UNAUTHENTICATED"
	CodeValidationError       ErrorCode = "VALIDATION_ERROR"
	CodeAccessRequestNotFound ErrorCode = "ACCESS_REQUEST_NOT_FOUND"
)

// GetErrorCode maps errors to error codes
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return CodeUserAlreadyExists
	case errors.Is(err, ErrMatriculeAlreadyExists):
		return CodeMatriculeAlreadyExists
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAccountBlocked):
		return CodeAccountBlocked
	case errors.Is(err, ErrAccountPending):
		return CodeAccountPending
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrInvalidPassword):
		return CodeInvalidPassword
	case errors.Is(err, ErrInvalidProfile):
		return CodeValidationError
	case errors.Is(err, ErrAccessRequestNotFound):
		return CodeAccessRequestNotFound
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.Is(err, ErrUserAlreadyExists):
		return "User with this email already exists"
	case errors.Is(err, ErrMatriculeAlreadyExists):
		return "A user with this matricule already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrAccountBlocked):
		return "Account is blocked"
	case errors.Is(err, ErrAccountPending):
		return "Account is pending activation"
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, ErrInvalidPassword):
		return "Password does not meet the minimum length requirement"
	case errors.Is(err, ErrInvalidProfile):
		return "Candidate profile is invalid"
	case errors.Is(err, ErrAccessRequestNotFound):
		return "Access request not found"
	default:
		return "Internal server error"
	}
}
