package model

import "time"

type LoyaltyPointType string

const (
	LoyaltyPointEarned   LoyaltyPointType = "EARNED"
	LoyaltyPointRedeemed LoyaltyPointType = "REDEEMED"
)

// ポイント台帳。行は追記のみ。
type LoyaltyPoint struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64            `gorm:"not null;index" json:"user_id"`
	OrderID     *int64           `gorm:"index" json:"order_id"`
	Points      int64            `gorm:"not null" json:"points"`
	Type        LoyaltyPointType `gorm:"type:varchar(20);not null" json:"type"`
	Description string           `gorm:"type:varchar(255);not null" json:"description"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}
