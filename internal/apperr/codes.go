// Package apperr provides structured domain errors with machine-readable codes.
package apperr

import "net/http"

// Code is a machine-readable error code surfaced to API callers.
type Code string

const (
	// CodeUnknown represents an unexpected internal error.
	CodeUnknown Code = "UNKNOWN_ERROR"

	// Input errors
	CodeMissingInput     Code = "MISSING_INPUT"
	CodeInvalidEnumValue Code = "INVALID_ENUM_VALUE"

	// Not-found errors, one per entity
	CodeMemberNotFound            Code = "MEMBER_NOT_FOUND"
	CodeVendorNotFound            Code = "VENDOR_NOT_FOUND"
	CodePromoNotFound             Code = "PROMO_NOT_FOUND"
	CodeEnrollmentRequestNotFound Code = "ENROLLMENT_REQUEST_NOT_FOUND"

	// Duplicate errors
	CodeExistingMember     Code = "EXISTING_MEMBER"
	CodeExistingVendor     Code = "EXISTING_VENDOR"
	CodeExistingEnrollment Code = "EXISTING_ENROLLMENT"

	// Promotion state and configuration errors
	CodePromoNotActive     Code = "PROMO_NOT_ACTIVE"
	CodeActivePromoDelete  Code = "ACTIVE_PROMO_DELETE"
	CodeInvalidPromoFields Code = "INVALID_PROMO_FIELDS"

	// Eligibility errors
	CodeRequiredFieldMissing Code = "REQUIRED_FIELD_MISSING"
	CodeInsufficientBalance  Code = "INSUFFICIENT_BALANCE"

	// Credential and authorization errors
	CodeMissingCredentials Code = "MISSING_CREDENTIALS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeNotAllowed         Code = "NOT_ALLOWED_ERROR"

	// Pagination errors
	CodePagination Code = "PAGINATION_ERROR"

	// Storage errors
	CodePersistence Code = "PERSISTENCE_ERROR"
)

// HTTPStatus maps a code to the status the REST surface responds with.
// Domain failures are client errors; persistence and unknown failures are not.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnknown, CodePersistence:
		return http.StatusInternalServerError
	case CodeNotAllowed:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
