// internal/usecase/mocks_test.go
package usecase

import (
	"context"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/provider/mpesa"
)

type mockOrderRepo struct {
	CreateFunc         func(ctx context.Context, order *domain.Order) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomerFunc func(ctx context.Context, customerID string) ([]domain.Order, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.CreateFunc(ctx, order)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return m.ListByCustomerFunc(ctx, customerID)
}

type mockSTKRepo struct {
	CreateFunc                 func(ctx context.Context, req *domain.STKPushRequest) error
	GetByCheckoutRequestIDFunc func(ctx context.Context, checkoutRequestID string) (*domain.STKPushRequest, error)
	HasPendingForOrderFunc     func(ctx context.Context, orderID string) (bool, error)
	SettleFunc                 func(ctx context.Context, s domain.STKSettlement) error
}

func (m *mockSTKRepo) Create(ctx context.Context, req *domain.STKPushRequest) error {
	return m.CreateFunc(ctx, req)
}

func (m *mockSTKRepo) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*domain.STKPushRequest, error) {
	return m.GetByCheckoutRequestIDFunc(ctx, checkoutRequestID)
}

func (m *mockSTKRepo) HasPendingForOrder(ctx context.Context, orderID string) (bool, error) {
	return m.HasPendingForOrderFunc(ctx, orderID)
}

func (m *mockSTKRepo) Settle(ctx context.Context, s domain.STKSettlement) error {
	return m.SettleFunc(ctx, s)
}

type mockProductRepo struct {
	CreateFunc  func(ctx context.Context, product *domain.Product) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Product, error)
	ListFunc    func(ctx context.Context) ([]domain.Product, error)
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	return m.CreateFunc(ctx, product)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return m.ListFunc(ctx)
}

type mockPusher struct {
	InitiateFunc func(ctx context.Context, phoneNumber string, amount float64, accountRef, description string) (*mpesa.STKPushResponse, error)
}

func (m *mockPusher) InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef, description string) (*mpesa.STKPushResponse, error) {
	return m.InitiateFunc(ctx, phoneNumber, amount, accountRef, description)
}
