package model

import "time"

type HeroSlide struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Subtitle  string    `gorm:"type:varchar(255)" json:"subtitle"`
	Image     string    `gorm:"type:text;not null" json:"image"`
	Link      string    `gorm:"type:text" json:"link"`
	SortOrder int       `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
