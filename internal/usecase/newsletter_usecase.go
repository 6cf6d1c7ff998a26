package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NewsletterUsecase struct {
	newsletterRepo repo.NewsletterRepository
}

// DI
func NewNewsletterUsecase(newsletterRepo repo.NewsletterRepository) *NewsletterUsecase {
	return &NewsletterUsecase{newsletterRepo: newsletterRepo}
}

// 購読登録。2回目以降も200で返す（冪等）。
func (u *NewsletterUsecase) Subscribe(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	exists, err := u.newsletterRepo.Exists(ctx, email)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return "already subscribed", nil
	}

	if err := u.newsletterRepo.Create(ctx, model.NewsletterSubscriber{Email: email}); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return "subscribed", nil
}
