package domain

import "errors"

// Expected business outcomes. These are recoverable and reported to the
// caller verbatim; the HTTP layer maps them to response codes. Anything
// else bubbling out of a service is an infrastructure fault.
var (
	ErrNotFound                = errors.New("not found")
	ErrValidation              = errors.New("invalid request")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInsufficientFunds       = errors.New("insufficient virtual balance")
	ErrInsufficientCredits     = errors.New("insufficient credits")
	ErrDuplicateCommuteLog     = errors.New("commute already logged for this day")
	ErrInvalidStateTransition  = errors.New("invalid state transition")
	ErrListingNotActive        = errors.New("listing is not active")
	ErrOrganizationNotApproved = errors.New("organization is not approved")
	ErrUnknownMethod           = errors.New("unknown transport method")
	ErrSelfTrade               = errors.New("cannot purchase your own organization's listing")
	ErrNotApproved             = errors.New("membership is not approved")
	ErrMissingCommuteDistance  = errors.New("commute distance is not set")
)
