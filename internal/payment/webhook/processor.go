package webhook

import (
	"context"
	"errors"
	"fmt"

	"legalpay-be/internal/logger"
	"legalpay-be/internal/order"
	"legalpay-be/internal/payment"

	"go.uber.org/zap"
)

// Ack is the exact acknowledgment body the acquirer expects. Anything else
// makes it retry delivery indefinitely.
const Ack = "OK"

var ErrInvalidTransition = errors.New("invalid payment status transition")

// Processor authenticates acquirer notifications and applies the payment
// state machine idempotently. Safe for concurrent deliveries of the same
// order: the store update is a compare-and-swap on the expected status.
type Processor struct {
	repo     order.Repository
	password string
}

func NewProcessor(repo order.Repository, password string) *Processor {
	return &Processor{
		repo:     repo,
		password: password,
	}
}

func (p *Processor) Process(ctx context.Context, raw map[string]any) (string, error) {
	log := logger.FromCtx(ctx)

	// Authenticate before touching anything else.
	if !payment.VerifyToken(raw, p.password) {
		log.Warn("webhook signature mismatch",
			zap.Any("order_id", raw["OrderId"]),
		)
		return "", payment.ErrInvalidSignature
	}

	pl, err := bindPayload(raw)
	if err != nil {
		log.Warn("webhook payload rejected", zap.Error(err))
		return "", err
	}

	log = log.With(
		zap.String("order_id", pl.OrderID),
		zap.String("gateway_status", pl.Status),
	)

	o, err := p.repo.GetByOrderID(ctx, pl.OrderID)
	if err != nil {
		log.Warn("webhook for unknown order", zap.Error(err))
		return "", err
	}

	target, ok := payment.MapGatewayStatus(pl.Status)
	if !ok {
		log.Warn("webhook carries unknown status")
		return "", fmt.Errorf("%w: %q", payment.ErrUnknownStatus, pl.Status)
	}

	// Idempotent replay: same status, no effect, still acknowledged.
	if target == o.Status {
		log.Info("duplicate webhook delivery, no-op")
		return Ack, nil
	}

	// A late intermediate after the order settled carries no terminal claim;
	// acknowledge it instead of provoking endless redelivery.
	if target == order.StatusPending && o.Status.Terminal() {
		log.Info("stale intermediate webhook after terminal status, no-op")
		return Ack, nil
	}

	if !order.CanTransition(o.Status, target) {
		log.Warn("invalid status transition rejected",
			zap.String("current", string(o.Status)),
		)
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}

	if err := p.repo.UpdateStatusIf(ctx, o.OrderID, o.Status, target); err != nil {
		if errors.Is(err, order.ErrStatusConflict) {
			// A concurrent delivery won the race. If it applied the same
			// status this one is a duplicate; otherwise reject.
			current, rerr := p.repo.GetByOrderID(ctx, pl.OrderID)
			if rerr == nil && current.Status == target {
				log.Info("concurrent duplicate delivery, no-op")
				return Ack, nil
			}
			return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
		}
		log.Error("failed to persist status transition", zap.Error(err))
		return "", err
	}

	log.Info("payment status updated by webhook",
		zap.String("new_status", string(target)),
	)
	return Ack, nil
}
