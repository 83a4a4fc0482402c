package service

import "errors"

// Domain errors shared by the allocator, transactor and resolver. Handlers
// map these onto HTTP statuses; anything else is a store failure.
var (
	ErrUnknownRole         = errors.New("unknown registrant role")
	ErrRegistrantNotFound  = errors.New("registrant not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrForbidden           = errors.New("email does not match the registrant on file")
	ErrAllocationExhausted = errors.New("could not allocate a free ticket code")
	ErrCouponInvalid       = errors.New("coupon is invalid or already used")
	ErrBadPayload          = errors.New("no ticket identifier in payload")
)
