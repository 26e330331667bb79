package apperror

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes the application surfaces.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindConflict
	KindNotFound
	KindExternalService
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindExternalService:
		return "external_service"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a tagged application error. Code is stable and safe to return to
// clients; Err carries the underlying cause and is never serialized.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind and Code so wrapped copies of a sentinel still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Validation
var (
	ErrInvalidPhone   = newErr(KindValidation, "invalid_phone", "Invalid phone number format")
	ErrPhoneRequired  = newErr(KindValidation, "phone_required", "Phone number is required")
	ErrCodeRequired   = newErr(KindValidation, "code_required", "Phone number and code are required")
	ErrWeakPassword   = newErr(KindValidation, "weak_password", "Password must be at least 8 characters with letters and numbers")
	ErrMissingFields  = newErr(KindValidation, "missing_fields", "Please fill all required fields")
	ErrLoginFields    = newErr(KindValidation, "missing_credentials", "Please provide phone and password")
	ErrInvalidEmail   = newErr(KindValidation, "invalid_email", "Invalid email address")
	ErrCodeNotFound   = newErr(KindValidation, "code_not_found", "No code has been sent to this phone")
	ErrCodeExpired    = newErr(KindValidation, "code_expired", "The code has expired")
	ErrCodeMismatch   = newErr(KindValidation, "code_mismatch", "The code is incorrect")
	ErrCaptchaFailed  = newErr(KindValidation, "captcha_failed", "Captcha verification failed")
	ErrTooFast        = newErr(KindValidation, "too_fast", "Form submitted too quickly")
	ErrInvalidBoxOpt  = newErr(KindValidation, "invalid_box_option", "Box option must be one of: need, noNeed")
	ErrInvalidListing = newErr(KindValidation, "invalid_listing", "Item description and pickup address are required")
	ErrInvalidListID  = newErr(KindValidation, "invalid_listing_id", "Invalid food item id")
	ErrInvalidPrefs   = newErr(KindValidation, "missing_preferences", "Missing required fields")
)

// Authentication
var (
	ErrInvalidCredentials = newErr(KindAuthentication, "invalid_credentials", "Invalid phone or password")
	ErrMissingToken       = newErr(KindAuthentication, "missing_token", "No token provided")
	ErrMalformedToken     = newErr(KindAuthentication, "malformed_token", "Invalid token format")
	ErrInvalidToken       = newErr(KindAuthentication, "invalid_token", "Invalid or expired token")
)

// Conflict
var (
	ErrDuplicatePhone = newErr(KindConflict, "duplicate_phone", "User with this phone already exists.")
	ErrAlreadyActive  = newErr(KindConflict, "already_active", "You already have an active meal. Please cancel or complete it first.")
)

// NotFound
var (
	ErrUserNotFound    = newErr(KindNotFound, "user_not_found", "User not found")
	ErrListingNotFound = newErr(KindNotFound, "listing_not_found", "Meal not found or already deleted")
)

// External
var (
	ErrCaptchaUnavailable = newErr(KindExternalService, "captcha_unavailable", "Captcha verification unavailable")
)

// Validation builds an ad-hoc validation error, e.g. from binder output.
func Validation(code, msg string) *Error {
	return newErr(KindValidation, code, msg)
}

// Persistence wraps a store failure. The message is generic by construction.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Code: "persistence", Message: "internal server error", Err: err}
}

// External wraps an upstream failure.
func External(code string, err error) *Error {
	return &Error{Kind: KindExternalService, Code: code, Message: "internal server error", Err: err}
}

// Wrap attaches a cause to a sentinel without losing its identity.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// As returns the tagged error in err's chain, or nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf reports the Kind of err; untagged errors are treated as persistence failures.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindPersistence
}
