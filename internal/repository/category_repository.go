package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryListQuery struct {
	Page       int
	Limit      int
	ActiveOnly bool
}

type CategoryRepository interface {
	List(ctx context.Context, q CategoryListQuery) ([]model.Category, int64, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	// カテゴリ配下の商品数（削除可否の判定に使う）
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
}
