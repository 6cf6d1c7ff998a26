package repository

import (
	"context"

	"app/internal/domain/model"
)

type LoyaltyRepository interface {
	Create(ctx context.Context, entry model.LoyaltyPoint) error
	ListByUserID(ctx context.Context, userID int64) ([]model.LoyaltyPoint, error)
	// 台帳の符号付き合計（残高）
	SumByUserID(ctx context.Context, userID int64) (int64, error)
}
