// internal/repository/stk_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"autoparts-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type STKRequestRepository interface {
	Create(ctx context.Context, req *domain.STKPushRequest) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*domain.STKPushRequest, error)
	HasPendingForOrder(ctx context.Context, orderID string) (bool, error)
	Settle(ctx context.Context, s domain.STKSettlement) error
}

type stkRequestRepo struct {
	db *pgxpool.Pool
}

func NewSTKRequestRepository(db *pgxpool.Pool) STKRequestRepository {
	return &stkRequestRepo{db: db}
}

func (r *stkRequestRepo) Create(ctx context.Context, req *domain.STKPushRequest) error {
	query := `
		INSERT INTO mpesa_stk_requests (
			order_id, user_id, payment_ref, phone_number, amount,
			checkout_request_id, merchant_request_id, response_code,
			response_description, customer_message, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		req.OrderID,
		req.UserID,
		req.PaymentRef,
		req.PhoneNumber,
		req.Amount,
		req.CheckoutRequestID,
		req.MerchantRequestID,
		req.ResponseCode,
		req.ResponseDescription,
		req.CustomerMessage,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *stkRequestRepo) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*domain.STKPushRequest, error) {
	query := `
		SELECT
			id, order_id, user_id, payment_ref, phone_number, amount,
			checkout_request_id, merchant_request_id, response_code,
			response_description, customer_message, status, result_code,
			result_desc, mpesa_receipt_number, transaction_date,
			customer_phone_number, created_at, completed_at
		FROM mpesa_stk_requests
		WHERE checkout_request_id = $1
	`

	var req domain.STKPushRequest
	err := r.db.QueryRow(ctx, query, checkoutRequestID).Scan(
		&req.ID,
		&req.OrderID,
		&req.UserID,
		&req.PaymentRef,
		&req.PhoneNumber,
		&req.Amount,
		&req.CheckoutRequestID,
		&req.MerchantRequestID,
		&req.ResponseCode,
		&req.ResponseDescription,
		&req.CustomerMessage,
		&req.Status,
		&req.ResultCode,
		&req.ResultDesc,
		&req.MpesaReceiptNumber,
		&req.TransactionDate,
		&req.CustomerPhoneNumber,
		&req.CreatedAt,
		&req.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *stkRequestRepo) HasPendingForOrder(ctx context.Context, orderID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM mpesa_stk_requests
			WHERE order_id = $1 AND status = 'pending'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Settle applies a reconciled callback outcome to the request row and its
// linked order row inside one transaction, so a crash can never leave the
// request completed while the order still reads unpaid. All writes are
// absolute values, which makes a redelivered callback settle to the same
// final state.
func (r *stkRequestRepo) Settle(ctx context.Context, s domain.STKSettlement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin settle tx: %w", err)
	}
	defer tx.Rollback(ctx)

	requestQuery := `
		UPDATE mpesa_stk_requests
		SET
			status = $1,
			result_code = $2,
			result_desc = $3,
			mpesa_receipt_number = $4,
			transaction_date = $5,
			customer_phone_number = $6,
			completed_at = COALESCE(completed_at, NOW())
		WHERE id = $7
	`
	if _, err := tx.Exec(ctx, requestQuery,
		s.Status,
		s.ResultCode,
		s.ResultDesc,
		s.MpesaReceiptNumber,
		s.TransactionDate,
		s.CustomerPhoneNumber,
		s.RequestID,
	); err != nil {
		return fmt.Errorf("settle stk request: %w", err)
	}

	if s.Status == domain.STKStatusCompleted {
		orderQuery := `
			UPDATE orders
			SET
				payment_status = $1,
				status = $2,
				mpesa_receipt_number = $3,
				paid_at = COALESCE(paid_at, NOW()),
				updated_at = NOW()
			WHERE id = $4
		`
		if _, err := tx.Exec(ctx, orderQuery,
			s.OrderPaymentStatus,
			s.OrderStatus,
			s.MpesaReceiptNumber,
			s.OrderID,
		); err != nil {
			return fmt.Errorf("settle order: %w", err)
		}
	} else {
		orderQuery := `
			UPDATE orders
			SET
				payment_status = $1,
				status = $2,
				updated_at = NOW()
			WHERE id = $3
		`
		if _, err := tx.Exec(ctx, orderQuery,
			s.OrderPaymentStatus,
			s.OrderStatus,
			s.OrderID,
		); err != nil {
			return fmt.Errorf("settle order: %w", err)
		}
	}

	return tx.Commit(ctx)
}
