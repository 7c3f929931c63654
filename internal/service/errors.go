package service

import "errors"

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidIdentifier = errors.New("invalid user identifier")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidRange      = errors.New("endDate must be on or after startDate")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreValidation   = errors.New("invalid request")
	ErrStoreUnavailable  = errors.New("database unavailable")
	ErrCapacityExceeded  = errors.New("bin capacity exceeded")
	ErrDuplicateOrder    = errors.New("duplicate order")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrEmailTaken        = errors.New("email already registered")
)
