package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	// Client Error Codes (4xx)
	StatusBadRequest         = 400
	StatusUnauthorized       = 401
	StatusForbidden          = 403
	StatusNotFound           = 404
	StatusConflict           = 409
	StatusGone               = 410
	StatusPreconditionFailed = 412
	StatusTooManyRequests    = 429

	// Server Error Codes (5xx)
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Response Messages
const (
	MsgSuccess = "Operation completed successfully"
	MsgCreated = "Resource created successfully"

	MsgBadRequest      = "Invalid request"
	MsgUnauthorized    = "Authentication required"
	MsgForbidden       = "Access denied"
	MsgNotFound        = "Resource not found"
	MsgInternalError   = "Internal server error"
	MsgValidationError = "Invalid input data"
	MsgDatabaseError   = "Database interaction failed"
	MsgInvalidFormat   = "Invalid data format"
)

// ErrorCode identifies a detailed error class.
type ErrorCode struct {
	Code        string // Machine-readable code (e.g. BIZ_003)
	Category    string // Error family (e.g. Business)
	SubCategory string // Sub family (e.g. Escalation)
	Description string
}

// Error code hierarchy. AUTH_xxx authentication, VAL_xxx validation,
// DB_xxx database, BIZ_xxx business rules.
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system error",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "General authentication error",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Token related error",
	}

	ErrCodeAuthActor = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Actor",
		Description: "Acting user is not allowed to perform the operation",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Invalid input data",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Invalid data format",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "General database error",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Database connection error",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Database query error",
	}

	ErrCodeDatabaseTransient = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Transient",
		Description: "Transient store error (contention or backend unavailability)",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Invalid business state",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Invalid business operation",
	}

	ErrCodeEscalation = ErrorCode{
		Code:        "BIZ_003",
		Category:    "Business",
		SubCategory: "Escalation",
		Description: "Escalation precondition violated",
	}
)

// Error is the structured error carried across service and handler layers.
type Error struct {
	Code       ErrorCode // Detailed error code
	Message    string    // Human-readable message
	StatusCode int       // HTTP status code
	Details    any       // Optional extra context
}

// Error returns the message.
func (e *Error) Error() string {
	return e.Message
}

// Is supports errors.Is by comparing code and message.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError builds a structured error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Authentication Errors
	ErrTokenMissing = NewError(ErrCodeAuthToken, "Missing authentication token", StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Invalid authentication token", StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Missing required field", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound    = NewError(ErrCodeDatabaseQuery, "Resource not found", StatusNotFound, nil)
	ErrDuplicate   = NewError(ErrCodeDatabaseQuery, "Resource already exists", StatusConflict, nil)
	ErrConnection  = NewError(ErrCodeDatabaseConnection, "Database connection failed", StatusServiceUnavailable, nil)
	ErrTransaction = NewError(ErrCodeDatabaseTransient, "Database transaction failed", StatusInternalServerError, nil)

	// Escalation Errors (manual escalation preconditions, surfaced verbatim
	// to the villager so they see which precondition failed)
	ErrIssueNotFound              = NewError(ErrCodeEscalation, "Issue not found", StatusNotFound, nil)
	ErrEscalationNotReporter      = NewError(ErrCodeAuthActor, "Only the villager who reported the issue can escalate it", StatusForbidden, nil)
	ErrEscalationIssueTerminal    = NewError(ErrCodeBusinessState, "Issue is already resolved or closed", StatusConflict, nil)
	ErrEscalationMissingDeadline  = NewError(ErrCodeBusinessState, "Issue has no resolution deadline", StatusConflict, nil)
	ErrEscalationTooEarly         = NewError(ErrCodeEscalation, "Issue is not past its resolution deadline yet", StatusPreconditionFailed, nil)
	ErrEscalationAlreadyUsed      = NewError(ErrCodeEscalation, "Manual escalation has already been used for this issue", StatusConflict, nil)
	ErrEscalationAtFinalAuthority = NewError(ErrCodeBusinessState, "Issue is already assigned to the highest authority", StatusConflict, nil)
)

// MongoDB specific errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "MongoDB connection error", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseTransient, "MongoDB network error", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseTransient, "MongoDB timeout", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, "MongoDB authentication error", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "MongoDB write error", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Duplicate key in MongoDB", StatusConflict, nil)
	ErrMongoConflict   = NewError(ErrCodeDatabaseTransient, "Write conflict in MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "MongoDB system error", StatusInternalServerError, nil)
)

// IsTransient reports whether err is a transient store error that a sweep
// should isolate and log rather than surface (contention, network, timeout).
func IsTransient(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.Code == ErrCodeDatabaseTransient.Code
	}
	return false
}

// ConvertMongoError maps a raw MongoDB driver error onto the structured
// error taxonomy. ErrNotFound passes through untouched.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Transaction aborts due to contention are retried by the caller or the
	// next sweep; classify them as transient.
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.HasErrorLabel("UnknownTransactionCommitResult") {
			return ErrMongoConflict
		}
		switch {
		case cmdErr.Code >= 100 && cmdErr.Code < 200:
			return ErrMongoConnection
		case cmdErr.Code >= 200 && cmdErr.Code < 300:
			return ErrMongoAuth
		case cmdErr.Code >= 300 && cmdErr.Code < 400:
			return ErrMongoQuery
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return ErrMongoWrite
		case cmdErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
