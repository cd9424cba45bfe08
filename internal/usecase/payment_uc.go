// internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"fmt"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/provider/mpesa"
	"autoparts-api/internal/repository"
	"autoparts-api/pkg/id"

	"go.uber.org/zap"
)

// StkPusher is the slice of the M-Pesa client the payment flow needs.
type StkPusher interface {
	InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef, description string) (*mpesa.STKPushResponse, error)
}

type PaymentUsecase struct {
	orderRepo repository.OrderRepository
	stkRepo   repository.STKRequestRepository
	pusher    StkPusher
	logger    *zap.Logger
}

func NewPaymentUsecase(
	orderRepo repository.OrderRepository,
	stkRepo repository.STKRequestRepository,
	pusher StkPusher,
	logger *zap.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		orderRepo: orderRepo,
		stkRepo:   stkRepo,
		pusher:    pusher,
		logger:    logger,
	}
}

// InitiateSTKPush validates the request, asks the provider to prompt the
// customer's phone and persists the attempt keyed by the provider's
// CheckoutRequestID so the later callback can be correlated. The push is
// never retried: a timeout may mean the prompt already reached the
// handset.
func (uc *PaymentUsecase) InitiateSTKPush(ctx context.Context, userID string, req *domain.STKPushInitiation) (*domain.STKPushRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.stkRepo.HasPendingForOrder(ctx, order.ID)
	if err != nil {
		uc.logger.Error("failed to check pending pushes",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to check pending pushes: %w", err)
	}
	if pending {
		return nil, domain.ErrPushPending
	}

	paymentRef := id.GenerateRef("PAY")

	uc.logger.Info("initiating stk push",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("payment_ref", paymentRef),
		zap.Float64("amount", req.Amount))

	resp, err := uc.pusher.InitiateSTKPush(ctx, req.PhoneNumber, req.Amount, paymentRef, "")
	if err != nil {
		uc.logger.Error("stk push failed",
			zap.String("order_id", order.ID),
			zap.String("payment_ref", paymentRef),
			zap.Error(err))
		return nil, err
	}

	record := &domain.STKPushRequest{
		OrderID:             order.ID,
		UserID:              userID,
		PaymentRef:          paymentRef,
		PhoneNumber:         req.PhoneNumber,
		Amount:              req.Amount,
		CheckoutRequestID:   optional(resp.CheckoutRequestID),
		MerchantRequestID:   optional(resp.MerchantRequestID),
		ResponseCode:        optional(resp.ResponseCode),
		ResponseDescription: optional(resp.ResponseDescription),
		CustomerMessage:     optional(resp.CustomerMessage),
		Status:              domain.STKStatusPending,
	}

	if err := uc.stkRepo.Create(ctx, record); err != nil {
		// The prompt is on the customer's phone but the correlation row
		// is gone; the callback will miss and the order stays unpaid
		// until support reconciles it manually.
		uc.logger.Error("failed to persist stk request after push",
			zap.String("order_id", order.ID),
			zap.String("checkout_request_id", resp.CheckoutRequestID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to persist stk request: %w", err)
	}

	uc.logger.Info("stk push initiated",
		zap.String("order_id", order.ID),
		zap.String("checkout_request_id", resp.CheckoutRequestID),
		zap.String("response_code", resp.ResponseCode))

	return record, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
