package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"legalpay-be/internal/logger"
	"legalpay-be/internal/order"

	"go.uber.org/zap"
)

const defaultDescription = "Payment"

type InitiateInput struct {
	UserID      string
	Amount      float64 // major units
	Method      string
	Description string
	SuccessURL  *string
	FailURL     *string
}

type InitiateResult struct {
	PaymentID  string `json:"paymentId"`
	PaymentURL string `json:"paymentUrl"`
	OrderID    string `json:"orderId"`
}

// PaymentView is the read model returned to callers; amounts are back in
// major units.
type PaymentView struct {
	PaymentID   string       `json:"paymentId"`
	OrderID     string       `json:"orderId"`
	UserID      string       `json:"userId,omitempty"`
	Amount      float64      `json:"amount"`
	Status      order.Status `json:"status"`
	Description string       `json:"description,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
}

type Service interface {
	InitiatePayment(ctx context.Context, in InitiateInput) (*InitiateResult, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentView, error)
	GetUserPayments(ctx context.Context, userID string) ([]*PaymentView, error)
}

type service struct {
	repo    order.Repository
	gateway Gateway
}

func NewService(repo order.Repository, gateway Gateway) Service {
	return &service{
		repo:    repo,
		gateway: gateway,
	}
}

func (s *service) InitiatePayment(ctx context.Context, in InitiateInput) (*InitiateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", in.UserID),
		zap.Float64("amount", in.Amount),
		zap.String("payment_method", in.Method),
	)

	if in.UserID == "" {
		return nil, ErrMissingUser
	}

	method, ok := order.ParseMethod(in.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, in.Method)
	}

	amountMinor, err := MajorToMinor(in.Amount)
	if err != nil {
		return nil, err
	}

	description := in.Description
	if description == "" {
		description = defaultDescription
	}

	orderID := NewOrderID()
	log = log.With(zap.String("order_id", orderID))

	// Persist before calling out: if the process dies mid-call the order is
	// already on record and reconcilable by OrderId.
	o := &order.Order{
		OrderID:     orderID,
		UserID:      in.UserID,
		AmountMinor: amountMinor,
		Method:      method,
		Description: description,
		Status:      order.StatusPending,
		SuccessURL:  in.SuccessURL,
		FailURL:     in.FailURL,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	res, err := s.gateway.Init(ctx, InitRequest{
		OrderID:     orderID,
		AmountMinor: amountMinor,
		Description: description,
		SuccessURL:  in.SuccessURL,
		FailURL:     in.FailURL,
	})
	if err != nil {
		// Order stays PENDING for later reconciliation via GetPayment.
		log.Error("payment initiation failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.SetPaymentID(ctx, orderID, res.PaymentID); err != nil {
		// The acquirer already accepted the order; OrderId correlation still
		// works, so log instead of failing the initiation.
		log.Error("failed to link gateway payment id", zap.Error(err))
	}

	log.Info("payment initiated",
		zap.String("payment_id", res.PaymentID),
	)

	return &InitiateResult{
		PaymentID:  res.PaymentID,
		PaymentURL: res.PaymentURL,
		OrderID:    orderID,
	}, nil
}

func (s *service) GetPayment(ctx context.Context, paymentID string) (*PaymentView, error) {
	o, err := s.repo.GetByPaymentID(ctx, paymentID)
	if err == nil {
		return viewFromOrder(o), nil
	}
	if !errors.Is(err, order.ErrOrderNotFound) {
		return nil, err
	}

	// No local record: fall back to the acquirer's view.
	state, err := s.gateway.GetState(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	status, ok := MapGatewayStatus(state.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, state.Status)
	}

	return &PaymentView{
		PaymentID: paymentID,
		Amount:    MinorToMajor(state.AmountMinor),
		Status:    status,
	}, nil
}

func (s *service) GetUserPayments(ctx context.Context, userID string) ([]*PaymentView, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*PaymentView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewFromOrder(o))
	}
	return views, nil
}

func viewFromOrder(o *order.Order) *PaymentView {
	createdAt := o.CreatedAt
	return &PaymentView{
		PaymentID:   o.PaymentID,
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		Amount:      MinorToMajor(o.AmountMinor),
		Status:      o.Status,
		Description: o.Description,
		CreatedAt:   &createdAt,
	}
}
