package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type LoyaltyUsecase struct {
	loyaltyRepo repo.LoyaltyRepository
}

// DI
func NewLoyaltyUsecase(loyaltyRepo repo.LoyaltyRepository) *LoyaltyUsecase {
	return &LoyaltyUsecase{loyaltyRepo: loyaltyRepo}
}

type LoyaltyOutput struct {
	Balance int64                `json:"balance"`
	Entries []model.LoyaltyPoint `json:"entries"`
}

// 台帳（新しい順）と残高
func (u *LoyaltyUsecase) MyPoints(ctx context.Context, userID int64) (LoyaltyOutput, error) {
	if userID <= 0 {
		return LoyaltyOutput{}, NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	entries, err := u.loyaltyRepo.ListByUserID(ctx, userID)
	if err != nil {
		return LoyaltyOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	balance, err := u.loyaltyRepo.SumByUserID(ctx, userID)
	if err != nil {
		return LoyaltyOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoyaltyOutput{Balance: balance, Entries: entries}, nil
}
