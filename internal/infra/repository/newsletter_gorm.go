package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type NewsletterGormRepository struct {
	db *gorm.DB
}

func NewNewsletterGormRepository(db *gorm.DB) *NewsletterGormRepository {
	return &NewsletterGormRepository{db: db}
}

func (r *NewsletterGormRepository) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.NewsletterSubscriber{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NewsletterGormRepository) Create(ctx context.Context, s model.NewsletterSubscriber) error {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return err
	}
	return nil
}
