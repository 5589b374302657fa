package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusConfirmed.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCanceled.Terminal())
}

func TestCanTransition(t *testing.T) {
	t.Run("PendingToTerminal", func(t *testing.T) {
		assert.True(t, CanTransition(StatusPending, StatusConfirmed))
		assert.True(t, CanTransition(StatusPending, StatusRejected))
		assert.True(t, CanTransition(StatusPending, StatusCanceled))
	})

	t.Run("TerminalNeverMoves", func(t *testing.T) {
		for _, from := range []Status{StatusConfirmed, StatusRejected, StatusCanceled} {
			for _, to := range []Status{StatusPending, StatusConfirmed, StatusRejected, StatusCanceled} {
				assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
			}
		}
	})

	t.Run("PendingToPending", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusPending))
	})
}

func TestParseMethod(t *testing.T) {
	m, ok := ParseMethod("CARD")
	assert.True(t, ok)
	assert.Equal(t, MethodCard, m)

	m, ok = ParseMethod("INVOICE")
	assert.True(t, ok)
	assert.Equal(t, MethodInvoice, m)

	_, ok = ParseMethod("CRYPTO")
	assert.False(t, ok)
}
