package payment

import "legalpay-be/internal/order"

// MapGatewayStatus translates the acquirer's status string into the internal
// payment status. Intermediate acquirer states map to PENDING so replayed or
// out-of-order intermediate notifications resolve as idempotent no-ops.
func MapGatewayStatus(s string) (order.Status, bool) {
	switch s {
	case "CONFIRMED":
		return order.StatusConfirmed, true
	case "REJECTED", "AUTH_FAIL", "DEADLINE_EXPIRED":
		return order.StatusRejected, true
	case "CANCELED", "REVERSED", "REFUNDED":
		return order.StatusCanceled, true
	case "NEW", "FORM_SHOWED", "AUTHORIZING", "AUTHORIZED",
		"3DS_CHECKING", "3DS_CHECKED", "CONFIRMING":
		return order.StatusPending, true
	}
	return "", false
}
