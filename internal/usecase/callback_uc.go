// internal/usecase/callback_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/provider/mpesa"
	"autoparts-api/internal/repository"

	"go.uber.org/zap"
)

type CallbackUsecase struct {
	stkRepo repository.STKRequestRepository
	logger  *zap.Logger
}

func NewCallbackUsecase(stkRepo repository.STKRequestRepository, logger *zap.Logger) *CallbackUsecase {
	return &CallbackUsecase{
		stkRepo: stkRepo,
		logger:  logger,
	}
}

// ProcessSTKCallback applies a provider result notification to the
// matching push request and its order. A callback with an unknown
// CheckoutRequestID is logged and dropped without error: the provider
// has no use for a failure acknowledgment it would only retry. Errors
// are returned solely for malformed payloads and datastore failures.
func (uc *CallbackUsecase) ProcessSTKCallback(ctx context.Context, payload []byte) error {
	result, err := mpesa.ParseSTKCallback(payload)
	if err != nil {
		uc.logger.Error("failed to parse stk callback", zap.Error(err))
		return err
	}

	uc.logger.Info("stk callback received",
		zap.String("checkout_request_id", result.CheckoutRequestID),
		zap.Int("result_code", result.ResultCode),
		zap.Bool("success", result.Success))

	if result.Success && result.MpesaReceiptNumber == "" {
		// The provider normally always includes the receipt on success;
		// proceed anyway and keep the field empty, matching the lenient
		// handling of the rest of the metadata.
		uc.logger.Warn("successful callback missing receipt number",
			zap.String("checkout_request_id", result.CheckoutRequestID))
	}

	req, err := uc.stkRepo.GetByCheckoutRequestID(ctx, result.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			uc.logger.Warn("no matching stk request for callback",
				zap.String("checkout_request_id", result.CheckoutRequestID))
			return nil
		}
		uc.logger.Error("failed to look up stk request",
			zap.String("checkout_request_id", result.CheckoutRequestID),
			zap.Error(err))
		return fmt.Errorf("failed to look up stk request: %w", err)
	}

	settlement := domain.STKSettlement{
		RequestID:           req.ID,
		OrderID:             req.OrderID,
		ResultCode:          result.ResultCode,
		ResultDesc:          result.ResultDesc,
		MpesaReceiptNumber:  optional(result.MpesaReceiptNumber),
		TransactionDate:     optional(result.TransactionDate),
		CustomerPhoneNumber: optional(result.PhoneNumber),
	}

	if result.Success {
		settlement.Status = domain.STKStatusCompleted
		settlement.OrderStatus = domain.OrderStatusProcessing
		settlement.OrderPaymentStatus = domain.PaymentStatusPaid
	} else {
		settlement.Status = domain.STKStatusFailed
		settlement.OrderStatus = domain.OrderStatusPaymentFailed
		settlement.OrderPaymentStatus = domain.PaymentStatusFailed
	}

	if err := uc.stkRepo.Settle(ctx, settlement); err != nil {
		uc.logger.Error("failed to settle stk callback",
			zap.String("checkout_request_id", result.CheckoutRequestID),
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to settle callback: %w", err)
	}

	uc.logger.Info("stk callback settled",
		zap.String("checkout_request_id", result.CheckoutRequestID),
		zap.String("order_id", req.OrderID),
		zap.String("status", string(settlement.Status)))

	return nil
}
