package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"legalpay-be/internal/logger"
	"legalpay-be/internal/order"
	"legalpay-be/internal/payment"
	"legalpay-be/internal/payment/webhook"
	"legalpay-be/internal/utils"

	"go.uber.org/zap"
)

// Handler exposes the payment API over REST.
type Handler struct {
	svc payment.Service
}

func NewHandler(svc payment.Service) *Handler {
	return &Handler{svc: svc}
}

// Register wires all payment routes onto the mux, including the acquirer
// callback endpoint.
func (h *Handler) Register(mux *http.ServeMux, wh *webhook.Handler) {
	mux.HandleFunc("POST /payments/init", h.InitPayment)
	mux.HandleFunc("GET /payments/user/{userId}", h.UserPayments)
	mux.HandleFunc("GET /payments/{id}", h.PaymentStatus)
	mux.HandleFunc("POST /payments/webhook", wh.WebhookHandler)
}

type initPaymentRequest struct {
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
	SuccessURL  *string `json:"successUrl,omitempty"`
	FailURL     *string `json:"failUrl,omitempty"`
}

func (h *Handler) InitPayment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var req initPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// An authenticated caller pays as themselves regardless of the body.
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		req.UserID = id
	}

	res, err := h.svc.InitiatePayment(r.Context(), payment.InitiateInput{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Method:      req.Method,
		Description: req.Description,
		SuccessURL:  req.SuccessURL,
		FailURL:     req.FailURL,
	})
	if err != nil {
		log.Warn("payment initiation rejected", zap.Error(err))
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, res, http.StatusCreated)
}

func (h *Handler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("id")
	if paymentID == "" {
		utils.WriteJSONError(w, "missing payment id", http.StatusBadRequest)
		return
	}

	view, err := h.svc.GetPayment(r.Context(), paymentID)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) UserPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	// Same rule as initiation: the session wins over the path.
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = id
	}

	views, err := h.svc.GetUserPayments(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, views, http.StatusOK)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, payment.ErrMissingUser),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrGatewayRejected):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrUnknownStatus):
		return http.StatusConflict
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
