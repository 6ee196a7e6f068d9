package constants

import "errors"

// Configuration errors
var (
	ErrNoApplicationName      = errors.New("application name is not set")
	ErrUnknownService         = errors.New("unknown service")
	ErrInvalidAuthProtocol    = errors.New("invalid authentication protocol")
	ErrInvalidEndpoint        = errors.New("invalid feed endpoint")
	ErrInvalidScope           = errors.New("invalid scope policy")
	ErrConflictingDeclaration = errors.New("conflicting extension declaration")
	ErrUnknownCodec           = errors.New("unknown codec")
)

// Query errors
var (
	ErrNotInteger     = errors.New("value is not an integer")
	ErrNegative       = errors.New("value must not be negative")
	ErrQuerySubmitted = errors.New("query already submitted")
)

// Connection errors
var (
	ErrNoEndpoint    = errors.New("endpoint not set")
	ErrNoUnmarshaler = errors.New("unmarshaler is not set")
	InvalidResponse  = errors.New("invalid feed response") //nolint:stylecheck
)
