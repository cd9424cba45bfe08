// internal/usecase/order_uc_test.go
package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"autoparts-api/internal/domain"

	"go.uber.org/zap"
)

func checkoutRequest(t *testing.T) *domain.PlaceOrderRequest {
	t.Helper()

	var req domain.PlaceOrderRequest
	body := `{
		"items": [
			{"product": {"id": "p1", "title": "Brake Pads", "price": 1500, "image": "/img/p1.jpg"}, "quantity": 2},
			{"product": {"id": "p2", "title": "Oil Filter", "price": 500, "image": "/img/p2.jpg"}, "quantity": 1}
		],
		"total": 3500,
		"shippingAddress": {"name": "Jane Doe", "phone": "254712345678", "address": "1 Moi Ave", "city": "Nairobi"},
		"paymentMethod": "mpesa"
	}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return &req
}

func TestPlaceOrder(t *testing.T) {
	var created *domain.Order
	orders := &mockOrderRepo{
		CreateFunc: func(_ context.Context, o *domain.Order) error {
			created = o
			return nil
		},
	}

	uc := NewOrderUsecase(orders, zap.NewNop())

	order, err := uc.PlaceOrder(context.Background(), "user-1", checkoutRequest(t))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if created == nil {
		t.Fatal("order not persisted")
	}
	if order.ID == "" {
		t.Error("order has no ID")
	}
	if order.CustomerID != "user-1" {
		t.Errorf("CustomerID = %q", order.CustomerID)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}
	if order.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("PaymentStatus = %q, want unpaid", order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(order.Items))
	}
	if order.Items[0].ProductID != "p1" || order.Items[0].Quantity != 2 || order.Items[0].Price != 1500 {
		t.Errorf("item snapshot = %+v", order.Items[0])
	}
	if order.ShippingAddress.City != "Nairobi" {
		t.Errorf("ShippingAddress.City = %q", order.ShippingAddress.City)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	uc := NewOrderUsecase(nil, zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*domain.PlaceOrderRequest)
	}{
		{"no items", func(r *domain.PlaceOrderRequest) { r.Items = nil }},
		{"zero total", func(r *domain.PlaceOrderRequest) { r.Total = 0 }},
		{"no address", func(r *domain.PlaceOrderRequest) { r.ShippingAddress = nil }},
		{"no payment method", func(r *domain.PlaceOrderRequest) { r.PaymentMethod = "" }},
		{"zero quantity", func(r *domain.PlaceOrderRequest) { r.Items[0].Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := checkoutRequest(t)
			tt.mutate(req)
			if _, err := uc.PlaceOrder(context.Background(), "user-1", req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestListUserOrders(t *testing.T) {
	orders := &mockOrderRepo{
		ListByCustomerFunc: func(_ context.Context, customerID string) ([]domain.Order, error) {
			if customerID != "user-1" {
				t.Errorf("customerID = %q", customerID)
			}
			return []domain.Order{{ID: "o1", CustomerID: customerID}}, nil
		},
	}

	uc := NewOrderUsecase(orders, zap.NewNop())

	got, err := uc.ListUserOrders(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListUserOrders: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("got %+v", got)
	}
}
