package repository

import (
	"context"

	"app/internal/domain/model"
)

type NewsletterRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, s model.NewsletterSubscriber) error
}
