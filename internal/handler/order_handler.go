// internal/handler/order_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/middleware"
	"autoparts-api/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
	logger  *zap.Logger
}

func NewOrderHandler(orderUC *usecase.OrderUsecase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
		logger:  logger,
	}
}

// HandlePlaceOrder handles POST /api/orders.
func (h *OrderHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "no authenticated user")
		return
	}

	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderUC.PlaceOrder(r.Context(), customerID, &req)
	if err != nil {
		h.logger.Error("failed to place order",
			zap.String("customer_id", customerID),
			zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "error placing order")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"id":      order.ID,
		"message": "Order placed successfully",
	})
}

// HandleListUserOrders handles GET /api/orders/{userId}. Users may only
// read their own orders.
func (h *OrderHandler) HandleListUserOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "no authenticated user")
		return
	}

	userID := chi.URLParam(r, "userId")
	if userID != customerID {
		respondMessage(w, http.StatusForbidden, "you can only view your own orders")
		return
	}

	orders, err := h.orderUC.ListUserOrders(r.Context(), customerID)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "error fetching orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
