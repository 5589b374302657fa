package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"legalpay-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	SetPaymentID(ctx context.Context, orderID, paymentID string) error

	// UpdateStatusIf applies the transition from → to only when the row still
	// holds the expected current status. Zero rows affected means another
	// delivery won the race (or the order is unknown) → ErrStatusConflict.
	UpdateStatusIf(ctx context.Context, orderID string, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, order_id, user_id, amount_minor, method, description,
		status, payment_id, success_url, fail_url, created_at, updated_at`

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Create"),
		zap.String("order_id", o.OrderID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_id, user_id, amount_minor, method, description,
			status, payment_id, success_url, fail_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`,
		o.OrderID, o.UserID, o.AmountMinor, o.Method, o.Description,
		o.Status, o.PaymentID, o.SuccessURL, o.FailURL,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Order, error) {
	return r.getBy(ctx, "order_id", orderID)
}

func (r *repository) GetByPaymentID(ctx context.Context, paymentID string) (*Order, error) {
	return r.getBy(ctx, "payment_id", paymentID)
}

func (r *repository) getBy(ctx context.Context, column, value string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s = $1`, orderColumns, column)

	var o Order
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&o.ID, &o.OrderID, &o.UserID, &o.AmountMinor, &o.Method, &o.Description,
		&o.Status, &o.PaymentID, &o.SuccessURL, &o.FailURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "ListByUser"),
		zap.String("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100
	`, orderColumns), userID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.OrderID, &o.UserID, &o.AmountMinor, &o.Method, &o.Description,
			&o.Status, &o.PaymentID, &o.SuccessURL, &o.FailURL, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) SetPaymentID(ctx context.Context, orderID, paymentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_id = $1, updated_at = NOW()
		WHERE order_id = $2
	`, paymentID, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, orderID string, from, to Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "UpdateStatusIf"),
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE order_id = $2
		  AND status = $3
	`, to, orderID, from)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		log.Warn("status transition lost the race")
		return ErrStatusConflict
	}

	log.Info("order status updated")
	return nil
}
