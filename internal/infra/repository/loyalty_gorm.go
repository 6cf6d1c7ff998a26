package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type LoyaltyGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyGormRepository(db *gorm.DB) *LoyaltyGormRepository {
	return &LoyaltyGormRepository{db: db}
}

// 台帳への追記
func (r *LoyaltyGormRepository) Create(ctx context.Context, entry model.LoyaltyPoint) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

func (r *LoyaltyGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.LoyaltyPoint, error) {
	var entries []model.LoyaltyPoint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&entries).Error
	if err != nil {
		return []model.LoyaltyPoint{}, err
	}
	return entries, nil
}

// 符号付き合計（残高）
func (r *LoyaltyGormRepository) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).Model(&model.LoyaltyPoint{}).
		Where("user_id = ?", userID).
		Select("SUM(points)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
