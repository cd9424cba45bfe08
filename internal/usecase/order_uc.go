// internal/usecase/order_uc.go
package usecase

import (
	"context"
	"fmt"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewOrderUsecase(orderRepo repository.OrderRepository, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// PlaceOrder records a checkout submission. The order starts pending and
// unpaid; payment is a separate step driven by the storefront.
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, customerID string, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		Items:           req.OrderItems(),
		Total:           req.Total,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		uc.logger.Error("failed to create order",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	uc.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", customerID),
		zap.Float64("total", order.Total),
		zap.String("payment_method", order.PaymentMethod))

	return order, nil
}

func (uc *OrderUsecase) ListUserOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := uc.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		uc.logger.Error("failed to list orders",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
