// internal/handler/payment_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/middleware"
	"autoparts-api/internal/usecase"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentUC *usecase.PaymentUsecase
	logger    *zap.Logger
}

func NewPaymentHandler(paymentUC *usecase.PaymentUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		logger:    logger,
	}
}

// HandleSTKPush handles POST /api/mpesa/stkpush.
func (h *PaymentHandler) HandleSTKPush(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "no authenticated user")
		return
	}

	var req domain.STKPushInitiation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.paymentUC.InitiateSTKPush(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			respondMessage(w, http.StatusNotFound, "order not found")
		case errors.Is(err, domain.ErrPushPending):
			respondMessage(w, http.StatusConflict, "a payment request is already pending for this order")
		default:
			h.logger.Error("stk push initiation failed",
				zap.String("order_id", req.OrderID),
				zap.Error(err))
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := map[string]interface{}{
		"message": "STK Push initiated successfully. Please check your phone for the prompt.",
	}
	if record.CheckoutRequestID != nil {
		resp["checkoutRequestID"] = *record.CheckoutRequestID
	}
	if record.CustomerMessage != nil {
		resp["customerMessage"] = *record.CustomerMessage
	}

	respondJSON(w, http.StatusOK, resp)
}
