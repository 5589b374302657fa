package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"legalpay-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postWebhook(t *testing.T, h *Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.WebhookHandler(rr, req)
	return rr
}

func TestWebhookHandler(t *testing.T) {
	t.Run("ConfirmedNotification_AcksLiteralOK", func(t *testing.T) {
		repo := new(MockRepository)
		h := NewHandler(NewProcessor(repo, testPassword))

		repo.On("GetByOrderID", mock.Anything, "PAY-1-abc").Return(pendingOrder(), nil)
		repo.On("UpdateStatusIf", mock.Anything, "PAY-1-abc", order.StatusPending, order.StatusConfirmed).Return(nil)

		body, err := json.Marshal(confirmedPayload(t))
		require.NoError(t, err)

		rr := postWebhook(t, h, body)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
		repo.AssertExpectations(t)
	})

	t.Run("TamperedToken_Forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		h := NewHandler(NewProcessor(repo, testPassword))

		raw := confirmedPayload(t)
		raw["Token"] = "deadbeef"
		body, err := json.Marshal(raw)
		require.NoError(t, err)

		rr := postWebhook(t, h, body)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		repo.AssertNotCalled(t, "UpdateStatusIf")
	})

	t.Run("InvalidJSON_BadRequest", func(t *testing.T) {
		repo := new(MockRepository)
		h := NewHandler(NewProcessor(repo, testPassword))

		rr := postWebhook(t, h, []byte("{not json"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("UnknownOrder_NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		h := NewHandler(NewProcessor(repo, testPassword))

		repo.On("GetByOrderID", mock.Anything, "PAY-1-abc").Return(nil, order.ErrOrderNotFound)

		body, err := json.Marshal(confirmedPayload(t))
		require.NoError(t, err)

		rr := postWebhook(t, h, body)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InvalidTransition_Conflict", func(t *testing.T) {
		repo := new(MockRepository)
		h := NewHandler(NewProcessor(repo, testPassword))

		canceled := pendingOrder()
		canceled.Status = order.StatusCanceled
		repo.On("GetByOrderID", mock.Anything, "PAY-1-abc").Return(canceled, nil)

		body, err := json.Marshal(confirmedPayload(t))
		require.NoError(t, err)

		rr := postWebhook(t, h, body)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
