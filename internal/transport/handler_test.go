package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legalpay-be/internal/order"
	"legalpay-be/internal/payment"
	"legalpay-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) InitiatePayment(ctx context.Context, in payment.InitiateInput) (*payment.InitiateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InitiateResult), args.Error(1)
}

func (m *MockService) GetPayment(ctx context.Context, paymentID string) (*payment.PaymentView, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentView), args.Error(1)
}

func (m *MockService) GetUserPayments(ctx context.Context, userID string) ([]*payment.PaymentView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.PaymentView), args.Error(1)
}

func newTestMux(svc payment.Service) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewHandler(svc)
	mux.HandleFunc("POST /payments/init", h.InitPayment)
	mux.HandleFunc("GET /payments/user/{userId}", h.UserPayments)
	mux.HandleFunc("GET /payments/{id}", h.PaymentStatus)
	return mux
}

func TestInitPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)

		svc.On("InitiatePayment", mock.Anything, mock.MatchedBy(func(in payment.InitiateInput) bool {
			return in.UserID == "u1" && in.Amount == 100.0 && in.Method == "CARD"
		})).Return(&payment.InitiateResult{
			PaymentID:  "7000123",
			PaymentURL: "https://securepay.example/pay",
			OrderID:    "PAY-1-abc",
		}, nil)

		body := `{"userId":"u1","amount":100,"method":"CARD","description":"Service fee"}`
		req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader(body))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res payment.InitiateResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, "7000123", res.PaymentID)
		assert.Equal(t, "PAY-1-abc", res.OrderID)
		svc.AssertExpectations(t)
	})

	t.Run("AuthenticatedUserOverridesBody", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("InitiatePayment", mock.Anything, mock.MatchedBy(func(in payment.InitiateInput) bool {
			return in.UserID == "session-user"
		})).Return(&payment.InitiateResult{PaymentID: "1", OrderID: "PAY-1-x"}, nil)

		body := `{"userId":"someone-else","amount":50,"method":"CARD"}`
		req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader(body))
		req = req.WithContext(utils.SetUserContext(req.Context(), "session-user", "user"))
		rr := httptest.NewRecorder()
		h.InitPayment(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)

		req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader("{broken"))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "InitiatePayment")
	})

	t.Run("ValidationErrors_BadRequest", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
		}{
			{"MissingUser", payment.ErrMissingUser},
			{"InvalidAmount", payment.ErrInvalidAmount},
			{"InvalidMethod", payment.ErrInvalidMethod},
			{"GatewayRejected", payment.ErrGatewayRejected},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := new(MockService)
				mux := newTestMux(svc)
				svc.On("InitiatePayment", mock.Anything, mock.Anything).Return(nil, tc.err)

				body := `{"userId":"u1","amount":10,"method":"CARD"}`
				req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader(body))
				rr := httptest.NewRecorder()
				mux.ServeHTTP(rr, req)

				assert.Equal(t, http.StatusBadRequest, rr.Code)
			})
		}
	})

	t.Run("GatewayUnavailable_503", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)
		svc.On("InitiatePayment", mock.Anything, mock.Anything).Return(nil, payment.ErrGatewayUnavailable)

		body := `{"userId":"u1","amount":10,"method":"CARD"}`
		req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader(body))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestPaymentStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)

		svc.On("GetPayment", mock.Anything, "7000123").Return(&payment.PaymentView{
			PaymentID: "7000123",
			OrderID:   "PAY-1-abc",
			Amount:    100,
			Status:    order.StatusConfirmed,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/7000123", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var view payment.PaymentView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Equal(t, order.StatusConfirmed, view.Status)
		assert.Equal(t, 100.0, view.Amount)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)
		svc.On("GetPayment", mock.Anything, "missing").Return(nil, order.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/payments/missing", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserPayments(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		mux := newTestMux(svc)

		svc.On("GetUserPayments", mock.Anything, "u1").Return([]*payment.PaymentView{
			{PaymentID: "1", OrderID: "PAY-1-a", Status: order.StatusPending},
			{PaymentID: "2", OrderID: "PAY-2-b", Status: order.StatusConfirmed},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/user/u1", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var views []*payment.PaymentView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
		assert.Len(t, views, 2)
	})

	t.Run("SessionUserOverridesPath", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("GetUserPayments", mock.Anything, "session-user").Return([]*payment.PaymentView{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/user/other", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), "session-user", "user"))
		req.SetPathValue("userId", "other")
		rr := httptest.NewRecorder()
		h.UserPayments(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})
}
