package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// OrderTxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type OrderTxManagerMock struct {
	Repos repo.TxRepos
}

func (m *OrderTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type OrderTxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	loyalty    repo.LoyaltyRepository
}

func (r *OrderTxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *OrderTxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *OrderTxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *OrderTxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *OrderTxReposMock) Loyalty() repo.LoyaltyRepository      { return r.loyalty }

// =====================
// Repository mocks（衝突回避の命名）
// =====================

type OrderProductRepoMock struct{ mock.Mock }

func (m *OrderProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *OrderProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) FindBySKU(ctx context.Context, sku string) (model.Product, bool, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

type OrderInventoryRepoMock struct{ mock.Mock }

func (m *OrderInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *OrderInventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderRepoMock) SumDeliveredTotal(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type OrderLoyaltyRepoMock struct{ mock.Mock }

func (m *OrderLoyaltyRepoMock) Create(ctx context.Context, entry model.LoyaltyPoint) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *OrderLoyaltyRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.LoyaltyPoint, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderLoyaltyRepoMock) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	panic("not used in OrderUsecase tests")
}

// =====================
// helpers
// =====================

type orderMocks struct {
	products  *OrderProductRepoMock
	inventory *OrderInventoryRepoMock
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	loyalty   *OrderLoyaltyRepoMock
	uc        *usecase.OrderUsecase
}

func newOrderMocks() orderMocks {
	products := new(OrderProductRepoMock)
	inventory := new(OrderInventoryRepoMock)
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	loyalty := new(OrderLoyaltyRepoMock)

	tx := &OrderTxManagerMock{Repos: &OrderTxReposMock{
		orders:     orders,
		orderItems: items,
		products:   products,
		inventory:  inventory,
		loyalty:    loyalty,
	}}

	return orderMocks{
		products:  products,
		inventory: inventory,
		orders:    orders,
		items:     items,
		loyalty:   loyalty,
		uc:        usecase.NewOrderUsecase(tx),
	}
}

func validAddress() usecase.ShippingAddress {
	return usecase.ShippingAddress{
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		Country:      "India",
	}
}

// =====================
// PlaceOrder 異常系
// =====================

func TestPlaceOrder_RequiresAuth(t *testing.T) {
	m := newOrderMocks()

	_, err := m.uc.PlaceOrder(context.Background(), 0, usecase.PlaceOrderInput{})
	assertErrContains(t, err, "authentication required")
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	m := newOrderMocks()

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assertErrContains(t, err, "no items in order")
}

func TestPlaceOrder_InvalidPaymentMethod(t *testing.T) {
	m := newOrderMocks()

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "paypal",
	})
	assertErrContains(t, err, "invalid payment method")
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	m := newOrderMocks()
	m.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{}, repo.ErrNotFound)

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assertErrContains(t, err, "product 7 not found")
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InactiveProductIsHidden(t *testing.T) {
	m := newOrderMocks()
	m.products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{
		ID: 3, Name: "Gold Ring", Price: 2000, StockQuantity: 5, IsActive: false,
	}, nil)

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 3, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assertErrContains(t, err, "product 3 not found")
}

func TestPlaceOrder_InsufficientStockRejectsWholeOrder(t *testing.T) {
	m := newOrderMocks()
	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Silver Chain", Price: 1500, StockQuantity: 10, IsActive: true,
	}, nil)
	m.products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{
		ID: 2, Name: "Pearl Earrings", Price: 900, StockQuantity: 1, IsActive: true,
	}, nil)

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assertErrContains(t, err, "insufficient stock for Pearl Earrings")

	// 事前チェックで弾かれるので減算も保存も走らない
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_TotalMismatch(t *testing.T) {
	m := newOrderMocks()
	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Silver Chain", Price: 1000, StockQuantity: 10, IsActive: true,
	}, nil)

	// サーバ計算: 1000 + 200 + 180 = 1380。申告1500は許容差1を超える
	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		ClientTotal:     1500,
	})
	assertErrContains(t, err, "total amount mismatch")
	m.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ConditionalDecrementFailure(t *testing.T) {
	m := newOrderMocks()
	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Silver Chain", Price: 1000, StockQuantity: 1, IsActive: true,
	}, nil)
	// 事前チェックは通るが、条件付きUPDATEで競合に負けるケース
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(false, nil)

	_, err := m.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		ClientTotal:     1380,
	})
	assertErrContains(t, err, "insufficient stock")
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// PlaceOrder 正常系
// =====================

func TestPlaceOrder_Success_CODUsesSalePrice(t *testing.T) {
	m := newOrderMocks()

	sale := int64(4000)
	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Diamond Pendant", Price: 6000, SalePrice: &sale,
		StockQuantity: 3, IsActive: true,
	}, nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)

	var createdOrder model.Order
	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		createdOrder = o
		return true
	})).Return(int64(42), nil)
	m.items.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	m.loyalty.On("Create", mock.Anything, mock.Anything).Return(nil)

	// subtotal=4000, shipping=200, tax=720, total=4920
	out, err := m.uc.PlaceOrder(context.Background(), 9, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1, Price: 9999}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		ClientTotal:     4920,
	})
	assert.NoError(t, err)

	// クライアント申告の単価ではなくセール価格で計算される
	assert.Equal(t, int64(4000), createdOrder.Subtotal)
	assert.Equal(t, int64(200), createdOrder.ShippingCost)
	assert.Equal(t, int64(720), createdOrder.Tax)
	assert.Equal(t, int64(4920), createdOrder.Total)
	assert.Equal(t, model.PaymentMethodCOD, createdOrder.PaymentMethod)
	assert.Equal(t, model.PaymentStatusPending, createdOrder.PaymentStatus)

	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "PENDING", out.Status)
	assert.Equal(t, int64(49), out.PointsEarned)

	m.orders.AssertExpectations(t)
	m.items.AssertExpectations(t)
	m.loyalty.AssertExpectations(t)
}

func TestPlaceOrder_UPIMarksPaymentCompleted(t *testing.T) {
	m := newOrderMocks()

	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Gold Bangle", Price: 1000, StockQuantity: 5, IsActive: true,
	}, nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)

	var createdOrder model.Order
	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		createdOrder = o
		return true
	})).Return(int64(7), nil)
	m.items.On("CreateBulk", mock.Anything, int64(7), mock.Anything).Return(nil)
	m.loyalty.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := m.uc.PlaceOrder(context.Background(), 5, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "upi",
		PaymentData:     map[string]interface{}{"transactionId": "upi-abc-123"},
		ClientTotal:     1380,
	})
	assert.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, createdOrder.PaymentStatus)
	assert.Equal(t, "upi-abc-123", createdOrder.PaymentID)
	assert.Equal(t, "COMPLETED", out.PaymentStatus)
}

func TestPlaceOrder_LoyaltyEntryLinksOrder(t *testing.T) {
	m := newOrderMocks()

	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Charm", Price: 50, StockQuantity: 5, IsActive: true,
	}, nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(11), nil)
	m.items.On("CreateBulk", mock.Anything, int64(11), mock.Anything).Return(nil)

	var entry model.LoyaltyPoint
	m.loyalty.On("Create", mock.Anything, mock.MatchedBy(func(e model.LoyaltyPoint) bool {
		entry = e
		return true
	})).Return(nil)

	// subtotal=50, shipping=200, tax=9, total=259 → 2ポイント
	out, err := m.uc.PlaceOrder(context.Background(), 2, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		ClientTotal:     259,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.PointsEarned)

	assert.Equal(t, int64(2), entry.Points)
	assert.Equal(t, model.LoyaltyPointEarned, entry.Type)
	if assert.NotNil(t, entry.OrderID) {
		assert.Equal(t, int64(11), *entry.OrderID)
	}
}

func TestPlaceOrder_StoresFrozenItemSnapshots(t *testing.T) {
	m := newOrderMocks()

	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Ruby Ring", Price: 3000, StockQuantity: 4, IsActive: true,
	}, nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(99), nil)

	var savedItems []model.OrderItem
	m.items.On("CreateBulk", mock.Anything, int64(99), mock.MatchedBy(func(items []model.OrderItem) bool {
		savedItems = items
		return true
	})).Return(nil)
	m.loyalty.On("Create", mock.Anything, mock.Anything).Return(nil)

	// subtotal=6000 → 送料無料, tax=1080, total=7080
	_, err := m.uc.PlaceOrder(context.Background(), 3, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		ClientTotal:     7080,
	})
	assert.NoError(t, err)

	if assert.Len(t, savedItems, 1) {
		assert.Equal(t, "Ruby Ring", savedItems[0].ProductName)
		assert.Equal(t, int64(3000), savedItems[0].UnitPriceSnapshot)
		assert.Equal(t, int64(2), savedItems[0].Quantity)
	}
}

// =====================
// 自分の注文の参照
// =====================

func TestGetMyOrderDetail_ForeignOrderHidden(t *testing.T) {
	m := newOrderMocks()
	m.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 99,
	}, nil)

	_, err := m.uc.GetMyOrderDetail(context.Background(), 1, 10)
	assertErrContains(t, err, "order not found")
}

func TestGetMyOrderDetail_Success(t *testing.T) {
	m := newOrderMocks()
	m.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, OrderNumber: "ORD-1-AAAAA", Total: 1380,
		Status: model.OrderStatusPending,
	}, nil)
	m.items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		{ProductID: 1, ProductName: "Chain", UnitPriceSnapshot: 1000, Quantity: 1},
	}, nil)

	out, err := m.uc.GetMyOrderDetail(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, "ORD-1-AAAAA", out.OrderNumber)
	assert.Len(t, out.Items, 1)
}

func TestListMyOrders_Success(t *testing.T) {
	m := newOrderMocks()
	m.orders.On("ListByUserID", mock.Anything, int64(1), 1, 50).Return([]model.Order{
		{ID: 1, UserID: 1}, {ID: 2, UserID: 1},
	}, int64(2), nil)
	m.items.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)
	m.items.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)

	outs, err := m.uc.ListMyOrders(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
}
