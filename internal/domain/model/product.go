package model

import (
	"time"

	"gorm.io/gorm"
)

// 金額は全てルピー整数。セール価格があればそちらが正となる。
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	SKU           string         `gorm:"column:sku;type:varchar(100);not null;uniqueIndex" json:"sku"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	SalePrice     *int64         `gorm:"column:sale_price" json:"sale_price"`
	CategoryID    int64          `gorm:"not null;index" json:"category_id"`
	StockQuantity int64          `gorm:"not null;default:0" json:"stock_quantity"`
	Images        string         `gorm:"type:text" json:"images"`
	Material      string         `gorm:"type:varchar(100)" json:"material"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	IsFeatured    bool           `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// 今有効な販売単価（セール価格優先）
func (p Product) EffectivePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
