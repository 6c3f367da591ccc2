package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/pricing"
	"github.com/xenking/storefront/internal/domain/product"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID   map[int64]product.Product
	getErr error
	calls  int
}

func (m *mockProductRepo) List(_ context.Context, _ product.Filter) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) ListCategories(_ context.Context) ([]product.Category, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []int64) ([]product.Product, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	lastOrder *Order
	orders    []Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.lastOrder = o
	return m.err
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID int64) ([]Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// --- Helpers ---

func newTestProduct(id int64, name, price string) product.Product {
	return product.Product{
		ID:           id,
		CategoryID:   1,
		CategoryName: "Electronics",
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Description:  name + " description",
	}
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepo{byID: byID}
}

// --- Tests ---

func TestPlaceOrder_EmptyItems(t *testing.T) {
	svc := NewService(newProductRepo(), &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{UserID: 1})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	products := newProductRepo(newTestProduct(1, "Widget", "10"))
	svc := NewService(products, &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 1, Quantity: -1}},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, int64(1), iqErr.ProductID)
	assert.Zero(t, products.calls, "products must not be fetched for invalid input")
}

func TestPlaceOrder_QuantityAboveLineLimit(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"one over the limit", pricing.MaxQuantity + 1},
		{"far beyond the limit", pricing.MaxQuantity * 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := newProductRepo(newTestProduct(7, "Widget", "10"))
			orders := &mockOrderRepo{}
			svc := NewService(products, orders)

			_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
				UserID: 1,
				Items:  []LineRequest{{ProductID: 7, Quantity: tt.quantity}},
			})

			var iqErr *InvalidQuantityError
			require.ErrorAs(t, err, &iqErr)
			assert.Equal(t, int64(7), iqErr.ProductID)
			assert.Nil(t, orders.lastOrder)
		})
	}
}

func TestPlaceOrder_AmountTooLarge(t *testing.T) {
	products := newProductRepo(
		newTestProduct(1, "Yacht", "99999999.99"),
		newTestProduct(2, "Jet", "99999999.99"),
	)
	orders := &mockOrderRepo{}
	svc := NewService(products, orders)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		UserID: 1,
		Items: []LineRequest{
			{ProductID: 1, Quantity: pricing.MaxQuantity},
			{ProductID: 2, Quantity: pricing.MaxQuantity},
		},
	})
	require.ErrorIs(t, err, ErrAmountTooLarge)
	assert.Nil(t, orders.lastOrder)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := NewService(newProductRepo(newTestProduct(1, "Widget", "10")), orders)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []LineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 42, Quantity: 1}},
	})

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Equal(t, int64(42), pnfErr.ProductID)
	assert.Nil(t, orders.lastOrder)
}

func TestPlaceOrder_ProductFetchError(t *testing.T) {
	products := newProductRepo()
	products.getErr = errors.New("connection refused")
	svc := NewService(products, &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []LineRequest{{ProductID: 1, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "get products")
}

func TestPlaceOrder_Pricing(t *testing.T) {
	tests := []struct {
		name            string
		items           []LineRequest
		decorations     []string
		personalization string
		wantItems       string
		wantDecorations string
		wantTotal       string
		wantNames       []string
		wantDescription string
	}{
		{
			name:            "items only",
			items:           []LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
			wantItems:       "1039.97",
			wantDecorations: "0",
			wantTotal:       "1039.97",
			wantNames:       []string{},
			wantDescription: "Items: $1039.97",
		},
		{
			name:            "add-ons are flat per order",
			items:           []LineRequest{{ProductID: 2, Quantity: 3}},
			decorations:     []string{"Gift Wrap", "Insurance"},
			wantItems:       "119.97",
			wantDecorations: "12.50",
			wantTotal:       "132.47",
			wantNames:       []string{"Gift Wrap", "Insurance"},
			wantDescription: "Items: $119.97 + Gift Wrap ($5.00) + Insurance ($7.50)",
		},
		{
			name:            "duplicates collapse and unknown names are skipped",
			items:           []LineRequest{{ProductID: 1, Quantity: 1}},
			decorations:     []string{"Express Shipping", "Teleport", "Express Shipping", "Personalization"},
			personalization: "Hi",
			wantItems:       "499.99",
			wantDecorations: "25.00",
			wantTotal:       "524.99",
			wantNames:       []string{"Express Shipping", "Personalization"},
			wantDescription: "Items: $499.99 + Express Shipping ($15.00) + Personalization: 'Hi' ($10.00)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderRepo{}
			svc := NewService(newProductRepo(
				newTestProduct(1, "Smartphone", "499.99"),
				newTestProduct(2, "Jeans", "39.99"),
			), orders)

			got, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
				UserID:              7,
				Items:               tt.items,
				Decorations:         tt.decorations,
				PersonalizationText: tt.personalization,
			})
			require.NoError(t, err)

			assert.True(t, decimal.RequireFromString(tt.wantItems).Equal(got.ItemsAmount), "items: %s", got.ItemsAmount)
			assert.True(t, decimal.RequireFromString(tt.wantDecorations).Equal(got.DecorationsAmount), "decorations: %s", got.DecorationsAmount)
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(got.Total), "total: %s", got.Total)
			assert.Equal(t, tt.wantNames, got.Decorations)
			assert.Equal(t, tt.wantDescription, got.Description)
			assert.Equal(t, int64(7), got.UserID)
			assert.NotEmpty(t, got.ID)
			assert.Len(t, got.Items, len(tt.items))
			assert.Same(t, orders.lastOrder, got)
		})
	}
}

func TestPlaceOrder_KeepsLineOrderAndSnapshotsPrice(t *testing.T) {
	svc := NewService(newProductRepo(
		newTestProduct(1, "Smartphone", "499.99"),
		newTestProduct(2, "Jeans", "39.99"),
	), &mockOrderRepo{})

	got, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []LineRequest{{ProductID: 2, Quantity: 2}, {ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Jeans", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("39.99").Equal(got.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("79.98").Equal(got.Items[0].Subtotal()))
	assert.Equal(t, "Smartphone", got.Items[1].Name)
}

func TestPlaceOrder_OrderCreateError(t *testing.T) {
	svc := NewService(
		newProductRepo(newTestProduct(1, "Widget", "10")),
		&mockOrderRepo{err: errors.New("db write failed")},
	)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []LineRequest{{ProductID: 1, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}

func TestListByUser(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	orders := &mockOrderRepo{orders: []Order{
		{ID: "a", UserID: 1, CreatedAt: now.Add(-time.Hour)},
		{ID: "b", UserID: 1, CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{ID: "c", UserID: 1, CreatedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: "d", UserID: 2, CreatedAt: now},
	}}
	svc := NewService(newProductRepo(), orders)
	svc.now = func() time.Time { return now }

	got, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, StatusProcessing, got[0].Status)
	assert.Equal(t, StatusShipping, got[1].Status)
	assert.Equal(t, StatusDelivered, got[2].Status)
}

func TestListByUser_RepoError(t *testing.T) {
	svc := NewService(newProductRepo(), &mockOrderRepo{err: errors.New("timeout")})

	_, err := svc.ListByUser(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list orders")
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		age  time.Duration
		want Status
	}{
		{0, StatusProcessing},
		{2 * day, StatusProcessing},
		{2*day + time.Second, StatusShipping},
		{7 * day, StatusShipping},
		{7*day + time.Second, StatusDelivered},
		{30 * day, StatusDelivered},
	}
	for _, tt := range tests {
		t.Run(tt.age.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAt(now.Add(-tt.age), now))
		})
	}
}
