package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

// DI
func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

type FavoriteOutput struct {
	ProductID int64         `json:"product_id"`
	Product   model.Product `json:"product"`
}

// お気に入り一覧。商品が非公開/削除済みになっていたら除外する。
func (u *FavoriteUsecase) List(ctx context.Context, userID int64) ([]FavoriteOutput, error) {
	if userID <= 0 {
		return []FavoriteOutput{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	favs, err := u.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []FavoriteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]FavoriteOutput, 0, len(favs))
	for _, f := range favs {
		p, err := u.productRepo.FindByID(ctx, f.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return []FavoriteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			continue
		}
		outs = append(outs, FavoriteOutput{ProductID: p.ID, Product: p})
	}
	return outs, nil
}

func (u *FavoriteUsecase) Add(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	// 商品の存在と公開チェック
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}

	exists, err := u.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return NewHTTPError(http.StatusBadRequest, "product already in favorites")
	}

	if err := u.favoriteRepo.Create(ctx, model.Favorite{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	if err := u.favoriteRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
