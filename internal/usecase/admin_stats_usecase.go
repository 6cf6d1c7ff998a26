package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// ダッシュボードの集計値
type AdminStatsOutput struct {
	TotalProducts   int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
	TotalOrders     int64 `json:"total_orders"`
	TotalUsers      int64 `json:"total_users"`
	TotalRevenue    int64 `json:"total_revenue"`
}

type AdminStatsUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	orderRepo    repo.OrderRepository
	userRepo     repo.UserRepository
}

// DI
func NewAdminStatsUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	orderRepo repo.OrderRepository,
	userRepo repo.UserRepository,
) *AdminStatsUsecase {
	return &AdminStatsUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
	}
}

// 売上はDELIVERED注文の合計
func (u *AdminStatsUsecase) Stats(ctx context.Context) (AdminStatsOutput, error) {
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	categories, err := u.categoryRepo.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue, err := u.orderRepo.SumDeliveredTotal(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminStatsOutput{
		TotalProducts:   products,
		TotalCategories: categories,
		TotalOrders:     orders,
		TotalUsers:      users,
		TotalRevenue:    revenue,
	}, nil
}
