package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"legalpay-be/internal/config"
	"legalpay-be/internal/logger"

	"go.uber.org/zap"
)

const gatewayTimeout = 15 * time.Second

type acquirerGateway struct {
	baseURL     string
	terminalKey string
	password    string
	httpClient  *http.Client
}

// NewAcquirerGateway returns the live client. One bounded-timeout call per
// operation, no internal retry; retry policy belongs to the caller.
func NewAcquirerGateway(cfg *config.Config) Gateway {
	return &acquirerGateway{
		baseURL:     cfg.GatewayBaseURL,
		terminalKey: cfg.TerminalKey,
		password:    cfg.TerminalPassword,
		httpClient: &http.Client{
			Timeout: gatewayTimeout,
		},
	}
}

// ----------------- Init -----------------

func (g *acquirerGateway) Init(ctx context.Context, req InitRequest) (*InitResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", req.OrderID),
		zap.Int64("amount", req.AmountMinor),
	)

	body := map[string]any{
		"TerminalKey": g.terminalKey,
		"Amount":      req.AmountMinor,
		"OrderId":     req.OrderID,
		"Description": req.Description,
	}
	if req.SuccessURL != nil && *req.SuccessURL != "" {
		body["SuccessURL"] = *req.SuccessURL
	}
	if req.FailURL != nil && *req.FailURL != "" {
		body["FailURL"] = *req.FailURL
	}
	body["Token"] = GenerateToken(body, g.password)

	log.Info("sending payment init to acquirer")

	res, err := g.post(ctx, "/Init", body)
	if err != nil {
		log.Error("acquirer init failed", zap.Error(err))
		return nil, err
	}

	if !res.Success {
		log.Error("acquirer rejected init",
			zap.String("error_code", res.ErrorCode),
			zap.String("message", res.Message),
		)
		return nil, rejectedError(res)
	}

	log.Info("payment initialized",
		zap.String("payment_id", res.PaymentID.String()),
		zap.String("status", res.Status),
	)

	return &InitResult{
		PaymentID:  res.PaymentID.String(),
		PaymentURL: res.PaymentURL,
		OrderID:    res.OrderID,
		Status:     res.Status,
	}, nil
}

// ----------------- GetState -----------------

func (g *acquirerGateway) GetState(ctx context.Context, paymentID string) (*StateResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("payment_id", paymentID))

	body := map[string]any{
		"TerminalKey": g.terminalKey,
		"PaymentId":   paymentID,
	}
	body["Token"] = GenerateToken(body, g.password)

	res, err := g.post(ctx, "/GetState", body)
	if err != nil {
		log.Error("acquirer state query failed", zap.Error(err))
		return nil, err
	}

	if !res.Success {
		log.Warn("acquirer rejected state query",
			zap.String("error_code", res.ErrorCode),
			zap.String("message", res.Message),
		)
		return nil, rejectedError(res)
	}

	return &StateResult{
		PaymentID:   res.PaymentID.String(),
		Status:      res.Status,
		AmountMinor: res.Amount,
	}, nil
}

// ----------------- Transport -----------------

func (g *acquirerGateway) post(ctx context.Context, path string, body map[string]any) (*apiResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: acquirer returned HTTP %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var res apiResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrGatewayUnavailable, err)
	}

	return &res, nil
}

// rejectedError passes the acquirer's diagnostic through verbatim; messages
// never contain the shared secret.
func rejectedError(res *apiResponse) error {
	msg := res.Message
	if msg == "" {
		msg = "payment operation failed"
	}
	return fmt.Errorf("%w: %s (code %s)", ErrGatewayRejected, msg, res.ErrorCode)
}
