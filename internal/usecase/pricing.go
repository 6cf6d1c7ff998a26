package usecase

// 注文金額まわりの定数。ハードコードが仕様。
const (
	// これを超えると送料無料（ちょうど5000は有料）
	freeShippingThreshold int64 = 5000
	shippingFee           int64 = 200

	// GST 18%
	gstRatePercent int64 = 18

	// クライアント計算の合計との許容差（丸め方向の違いを吸収）
	totalTolerance int64 = 1

	// ルピー100ごとに1ポイント
	loyaltyRupeesPerPoint int64 = 100
)

// Quoteは注文1件分の金額内訳
type Quote struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Tax          int64 `json:"tax"`
	Total        int64 `json:"total"`
}

// QuoteLineは単価解決済みの明細
type QuoteLine struct {
	UnitPrice int64
	Quantity  int64
}

// ComputeQuoteは明細から金額内訳を計算する純粋関数。
// 税は四捨五入（切り捨てではない）。
func ComputeQuote(lines []QuoteLine) Quote {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPrice * l.Quantity
	}

	var shipping int64
	if subtotal <= freeShippingThreshold {
		shipping = shippingFee
	}

	// round(subtotal * 0.18) を整数演算で（半分は切り上げ）
	tax := (subtotal*gstRatePercent + 50) / 100

	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
	}
}

// TotalMatchesはクライアント申告の合計が許容差内かを返す。
func (q Quote) TotalMatches(clientTotal int64) bool {
	diff := q.Total - clientTotal
	if diff < 0 {
		diff = -diff
	}
	return diff <= totalTolerance
}

// PointsForTotalは付与ポイント（floor(total/100)）。
func PointsForTotal(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total / loyaltyRupeesPerPoint
}
