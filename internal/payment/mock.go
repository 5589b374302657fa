package payment

import (
	"context"

	"legalpay-be/internal/logger"

	"go.uber.org/zap"
)

// mockRedirectURL is returned when neither the request nor configuration
// supplies a success URL, so local flows still land somewhere sensible.
const mockRedirectURL = "http://localhost:5173/cabinet?payment=success"

// mockGateway is the deterministic no-network implementation used when
// terminal credentials are absent or still the example placeholder.
type mockGateway struct {
	successURL string
}

func NewMockGateway(successURL string) Gateway {
	return &mockGateway{successURL: successURL}
}

func (g *mockGateway) Init(ctx context.Context, req InitRequest) (*InitResult, error) {
	url := g.successURL
	if req.SuccessURL != nil && *req.SuccessURL != "" {
		url = *req.SuccessURL
	}
	if url == "" {
		url = mockRedirectURL
	}

	logger.FromCtx(ctx).Warn("mock payment created, no acquirer call made",
		zap.String("order_id", req.OrderID),
		zap.Int64("amount", req.AmountMinor),
	)

	return &InitResult{
		PaymentID:  "mock-" + req.OrderID,
		PaymentURL: url,
		OrderID:    req.OrderID,
		Status:     "NEW",
	}, nil
}

func (g *mockGateway) GetState(ctx context.Context, paymentID string) (*StateResult, error) {
	return &StateResult{
		PaymentID:   paymentID,
		Status:      "NEW",
		AmountMinor: 0,
	}, nil
}
