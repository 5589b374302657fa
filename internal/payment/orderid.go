package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const orderIDPrefix = "PAY"

// NewOrderID produces the idempotency key for an order:
// "PAY-<unixMillis>-<hex8>". The millisecond prefix keeps ids loosely sorted
// by creation time for support lookups; the 8 hex chars (32 random bits per
// id) keep collisions negligible at this system's volume.
func NewOrderID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, time.Now().UnixMilli(), suffix)
}
