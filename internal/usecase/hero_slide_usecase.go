package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HeroSlideUsecase struct {
	slideRepo repo.HeroSlideRepository
}

// DI
func NewHeroSlideUsecase(slideRepo repo.HeroSlideRepository) *HeroSlideUsecase {
	return &HeroSlideUsecase{slideRepo: slideRepo}
}

// トップページ用：有効スライドをsort_order順で
func (u *HeroSlideUsecase) ListActive(ctx context.Context) ([]model.HeroSlide, error) {
	slides, err := u.slideRepo.ListActive(ctx)
	if err != nil {
		return []model.HeroSlide{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return slides, nil
}

func (u *HeroSlideUsecase) ListAll(ctx context.Context) ([]model.HeroSlide, error) {
	slides, err := u.slideRepo.ListAll(ctx)
	if err != nil {
		return []model.HeroSlide{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return slides, nil
}

type HeroSlideInput struct {
	Title     string
	Subtitle  string
	Image     string
	Link      string
	SortOrder int
	IsActive  bool
}

func (u *HeroSlideUsecase) Create(ctx context.Context, in HeroSlideInput) (model.HeroSlide, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Image) == "" {
		return model.HeroSlide{}, NewHTTPError(http.StatusBadRequest, "title and image are required")
	}

	created, err := u.slideRepo.Create(ctx, model.HeroSlide{
		Title:     strings.TrimSpace(in.Title),
		Subtitle:  in.Subtitle,
		Image:     in.Image,
		Link:      in.Link,
		SortOrder: in.SortOrder,
		IsActive:  in.IsActive,
	})
	if err != nil {
		return model.HeroSlide{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *HeroSlideUsecase) Update(ctx context.Context, id int64, in HeroSlideInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Image) == "" {
		return NewHTTPError(http.StatusBadRequest, "title and image are required")
	}

	if err := u.slideRepo.Update(ctx, model.HeroSlide{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Subtitle:  in.Subtitle,
		Image:     in.Image,
		Link:      in.Link,
		SortOrder: in.SortOrder,
		IsActive:  in.IsActive,
	}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "hero slide not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *HeroSlideUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.slideRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "hero slide not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
