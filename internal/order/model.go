package order

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCanceled  Status = "CANCELED"
)

// Terminal reports whether no further transitions are accepted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusConfirmed, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// CanTransition reports whether from → to is a valid state machine edge.
// The only edges are PENDING → {CONFIRMED, REJECTED, CANCELED}; a terminal
// order never moves again, including to a different terminal state.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

type Method string

const (
	MethodCard    Method = "CARD"
	MethodInvoice Method = "INVOICE"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodCard, MethodInvoice:
		return Method(s), true
	}
	return "", false
}

// Order is the durable record of a payment attempt. OrderID is the idempotency
// key for all gateway-side correlation and never changes after creation.
type Order struct {
	ID          int64
	OrderID     string
	UserID      string
	AmountMinor int64
	Method      Method
	Description string
	Status      Status
	PaymentID   string
	SuccessURL  *string
	FailURL     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
