// internal/domain/order.go
package domain

import (
	"errors"
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusProcessing    OrderStatus = "processing"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
)

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

// OrderItem is a denormalized snapshot of the product at purchase time,
// not a live reference. Catalog edits after checkout must not change
// what the customer agreed to pay.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type Order struct {
	ID                 string          `json:"id"`
	CustomerID         string          `json:"customerId"`
	Items              []OrderItem     `json:"items"`
	Total              float64         `json:"total"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	PaymentMethod      string          `json:"paymentMethod"`
	Status             OrderStatus     `json:"status"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus"`
	MpesaReceiptNumber *string         `json:"mpesaReceiptNumber,omitempty"`
	PaidAt             *time.Time      `json:"paidAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// PlaceOrderRequest is the checkout submission body. Items arrive in the
// storefront's cart shape (product object plus quantity) and are
// flattened into OrderItem snapshots.
type PlaceOrderRequest struct {
	Items []struct {
		Product struct {
			ID    string  `json:"id"`
			Title string  `json:"title"`
			Price float64 `json:"price"`
			Image string  `json:"image"`
		} `json:"product"`
		Quantity int `json:"quantity"`
	} `json:"items"`
	Total           float64          `json:"total"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

func (r *PlaceOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("items are required")
	}
	if r.Total <= 0 {
		return errors.New("total must be greater than 0")
	}
	if r.ShippingAddress == nil {
		return errors.New("shippingAddress is required")
	}
	if r.PaymentMethod == "" {
		return errors.New("paymentMethod is required")
	}
	for _, item := range r.Items {
		if item.Product.ID == "" {
			return errors.New("every item requires a product id")
		}
		if item.Quantity <= 0 {
			return errors.New("every item requires a positive quantity")
		}
	}
	return nil
}

// OrderItems flattens the cart-shaped request items into snapshots.
func (r *PlaceOrderRequest) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, OrderItem{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Image:     item.Product.Image,
		})
	}
	return items
}
