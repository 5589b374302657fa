package payment

import "errors"

var (
	ErrMissingUser        = errors.New("user id is required")
	ErrInvalidAmount      = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidMethod      = errors.New("unsupported payment method")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrUnknownStatus      = errors.New("unknown gateway status")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
)
