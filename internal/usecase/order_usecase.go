package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 注文時の配送先。注文にJSONスナップショットで保存する。
type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,min=1"`
	// クライアント表示用の単価。照合にもDBにも使わない。
	Price int64 `json:"price"`
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress ShippingAddress
	PaymentMethod   string
	PaymentData     map[string]interface{}
	// クライアントが計算した合計。サーバ計算と±1まで許容。
	ClientTotal int64
}

type PlacedOrderOutput struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	PointsEarned  int64     `json:"points_earned"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	OrderNumber     string            `json:"order_number"`
	UserID          int64             `json:"user_id"`
	Subtotal        int64             `json:"subtotal"`
	ShippingCost    int64             `json:"shipping_cost"`
	Tax             int64             `json:"tax"`
	Total           int64             `json:"total"`
	Status          string            `json:"status"`
	PaymentMethod   string            `json:"payment_method"`
	PaymentStatus   string            `json:"payment_status"`
	ShippingAddress json.RawMessage   `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// PlaceOrderは注文作成の全行程。
// 在庫チェック＋減算、注文・明細の保存、ポイント付与を1トランザクションで行う。
// どこかで失敗したら減算済みの在庫も含めて全部巻き戻る。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlacedOrderOutput, error) {
	if userID <= 0 {
		return PlacedOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if len(in.Items) == 0 {
		return PlacedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "no items in order")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			return PlacedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid items")
		}
	}
	if in.ShippingAddress.FullName == "" || in.ShippingAddress.Email == "" {
		return PlacedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping address is required")
	}

	method, paymentStatus, ok := resolvePaymentMethod(in.PaymentMethod)
	if !ok {
		return PlacedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	var out PlacedOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品を解決して単価を確定（セール価格優先。クライアント申告の単価は使わない）
		lines := make([]QuoteLine, 0, len(in.Items))
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", it.ProductID))
			}

			//在庫の事前チェック。1件でも足りなければ注文全体を拒否（減算前なので何も触らない）
			if p.StockQuantity < it.Quantity {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s", p.Name))
			}

			unit := p.EffectivePrice()
			lines = append(lines, QuoteLine{UnitPrice: unit, Quantity: it.Quantity})
			orderItems = append(orderItems, model.OrderItem{
				ProductID:         p.ID,
				ProductName:       p.Name,
				UnitPriceSnapshot: unit,
				Quantity:          it.Quantity,
			})
		}

		//金額計算と申告合計の照合
		quote := ComputeQuote(lines)
		if !quote.TotalMatches(in.ClientTotal) {
			return NewHTTPError(http.StatusBadRequest, "total amount mismatch")
		}

		//在庫減算（条件付きUPDATE）。失敗したらtxごと巻き戻る
		for _, it := range in.Items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock")
			}
		}

		//配送先はそのままJSONで凍結
		addrJSON, err := json.Marshal(in.ShippingAddress)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		now := time.Now()
		order := model.Order{
			OrderNumber:     NewOrderNumber(now),
			UserID:          userID,
			Subtotal:        quote.Subtotal,
			ShippingCost:    quote.ShippingCost,
			Tax:             quote.Tax,
			Total:           quote.Total,
			Status:          model.OrderStatusPending,
			PaymentMethod:   method,
			PaymentStatus:   paymentStatus,
			PaymentID:       extractTransactionID(in.PaymentData),
			ShippingAddress: string(addrJSON),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//ポイント付与（0なら台帳に書かない）
		points := PointsForTotal(quote.Total)
		if points > 0 {
			id := orderID
			entry := model.LoyaltyPoint{
				UserID:      userID,
				OrderID:     &id,
				Points:      points,
				Type:        model.LoyaltyPointEarned,
				Description: fmt.Sprintf("Points earned for order #%d", orderID),
			}
			if err := r.Loyalty().Create(ctx, entry); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = PlacedOrderOutput{
			ID:            orderID,
			OrderNumber:   order.OrderNumber,
			Total:         quote.Total,
			Status:        string(model.OrderStatusPending),
			PaymentStatus: string(paymentStatus),
			CreatedAt:     now,
			PointsEarned:  points,
		}
		return nil
	})

	if err != nil {
		return PlacedOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// cod/upi/googlepay → 保存用enum。CODだけ支払いPENDINGで始まる。
// 非CODのCOMPLETEDはデモ経路（ゲートウェイ未検証）の仕様。
func resolvePaymentMethod(s string) (model.PaymentMethod, model.PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cod":
		return model.PaymentMethodCOD, model.PaymentStatusPending, true
	case "upi":
		return model.PaymentMethodUPI, model.PaymentStatusCompleted, true
	case "googlepay":
		return model.PaymentMethodGooglePay, model.PaymentStatusCompleted, true
	}
	return "", "", false
}

// payment_dataは不透明。transactionIdだけ拾って保存する。
func extractTransactionID(data map[string]interface{}) string {
	if data == nil {
		return ""
	}
	for _, key := range []string{"transactionId", "transaction_id"} {
		if v, ok := data[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Tax:             o.Tax,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		ShippingAddress: json.RawMessage(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
