package payment

import (
	"context"
	"encoding/json"

	"legalpay-be/internal/config"
	"legalpay-be/internal/logger"
)

// Gateway executes the two outbound acquiring operations. Exactly one
// implementation is selected at construction; the production call path carries
// no mock branching.
type Gateway interface {
	Init(ctx context.Context, req InitRequest) (*InitResult, error)
	GetState(ctx context.Context, paymentID string) (*StateResult, error)
}

type InitRequest struct {
	OrderID     string
	AmountMinor int64
	Description string
	SuccessURL  *string
	FailURL     *string
}

type InitResult struct {
	PaymentID  string
	PaymentURL string
	OrderID    string
	Status     string
}

type StateResult struct {
	PaymentID   string
	Status      string
	AmountMinor int64
}

// apiResponse mirrors the wire shape shared by /Init and /GetState responses.
// PaymentId arrives as a string on Init and a number on notifications, so it
// is decoded as json.Number.
type apiResponse struct {
	Success    bool        `json:"Success"`
	ErrorCode  string      `json:"ErrorCode"`
	Status     string      `json:"Status"`
	PaymentID  json.Number `json:"PaymentId"`
	OrderID    string      `json:"OrderId"`
	Amount     int64       `json:"Amount"`
	PaymentURL string      `json:"PaymentURL"`
	Message    string      `json:"Message"`
	Details    string      `json:"Details"`
}

// NewGateway selects the implementation from configuration, once.
func NewGateway(cfg *config.Config) Gateway {
	if cfg.MockGateway() {
		logger.L().Warn("acquirer credentials missing or placeholder, using mock gateway")
		return NewMockGateway(cfg.SuccessURL)
	}
	return NewAcquirerGateway(cfg)
}
