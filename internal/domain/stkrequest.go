// internal/domain/stkrequest.go
package domain

import (
	"errors"
	"math"
	"regexp"
	"time"
)

type STKRequestStatus string

const (
	STKStatusPending   STKRequestStatus = "pending"
	STKStatusCompleted STKRequestStatus = "completed"
	STKStatusFailed    STKRequestStatus = "failed"
)

// M-Pesa subscriber numbers: country code 254 followed by a 7xx mobile
// prefix and eight digits, twelve characters total.
var phonePattern = regexp.MustCompile(`^2547\d{8}$`)

// STKPushRequest tracks one push-payment attempt against the provider.
// Created when the push is accepted; mutated only by the callback
// reconciler; never deleted.
type STKPushRequest struct {
	ID                  int64            `json:"id"`
	OrderID             string           `json:"orderId"`
	UserID              string           `json:"userId"`
	PaymentRef          string           `json:"paymentRef"`
	PhoneNumber         string           `json:"phoneNumber"`
	Amount              float64          `json:"amount"`
	CheckoutRequestID   *string          `json:"checkoutRequestID,omitempty"`
	MerchantRequestID   *string          `json:"merchantRequestID,omitempty"`
	ResponseCode        *string          `json:"responseCode,omitempty"`
	ResponseDescription *string          `json:"responseDescription,omitempty"`
	CustomerMessage     *string          `json:"customerMessage,omitempty"`
	Status              STKRequestStatus `json:"status"`
	ResultCode          *int             `json:"resultCode,omitempty"`
	ResultDesc          *string          `json:"resultDesc,omitempty"`
	MpesaReceiptNumber  *string          `json:"mpesaReceiptNumber,omitempty"`
	TransactionDate     *string          `json:"transactionDate,omitempty"`
	CustomerPhoneNumber *string          `json:"customerPhoneNumber,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	CompletedAt         *time.Time       `json:"completedAt,omitempty"`
}

// STKPushInitiation is the client-facing push request body.
type STKPushInitiation struct {
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
	OrderID     string  `json:"orderId"`
}

func (r *STKPushInitiation) Validate() error {
	if r.PhoneNumber == "" || r.Amount == 0 || r.OrderID == "" {
		return errors.New("phoneNumber, amount and orderId are required")
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return errors.New("invalid phone number format, must be 2547XXXXXXXX")
	}
	if r.Amount < 1 {
		return errors.New("amount must be at least 1 KES")
	}
	// Daraja accepts whole units only; a fractional amount would be
	// silently truncated on the wire.
	if r.Amount != math.Trunc(r.Amount) {
		return errors.New("amount must be a whole number of KES")
	}
	return nil
}

// STKSettlement carries the reconciled outcome of a callback. The
// repository applies it to the request row and the linked order row in a
// single transaction; every field is an absolute value so redelivered
// callbacks settle to the same state.
type STKSettlement struct {
	RequestID           int64
	OrderID             string
	Status              STKRequestStatus
	ResultCode          int
	ResultDesc          string
	MpesaReceiptNumber  *string
	TransactionDate     *string
	CustomerPhoneNumber *string
	OrderStatus         OrderStatus
	OrderPaymentStatus  PaymentStatus
}
