package repository

import (
	"context"

	"app/internal/domain/model"
)

type HeroSlideRepository interface {
	// 有効スライドをsort_order昇順で返す
	ListActive(ctx context.Context) ([]model.HeroSlide, error)
	ListAll(ctx context.Context) ([]model.HeroSlide, error)
	FindByID(ctx context.Context, id int64) (model.HeroSlide, error)

	Create(ctx context.Context, s model.HeroSlide) (model.HeroSlide, error)
	Update(ctx context.Context, s model.HeroSlide) error
	Delete(ctx context.Context, id int64) error
}
