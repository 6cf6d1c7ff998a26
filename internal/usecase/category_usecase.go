package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, productRepo repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, productRepo: productRepo}
}

type CategoryListOutput struct {
	Categories []model.Category `json:"categories"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"total_pages"`
}

// 公開カテゴリの一覧（name昇順）
func (u *CategoryUsecase) ListPublic(ctx context.Context, page int, limit int) (CategoryListOutput, error) {
	return u.list(ctx, page, limit, true)
}

// 管理画面は非公開も含む
func (u *CategoryUsecase) ListAdmin(ctx context.Context, page int, limit int) (CategoryListOutput, error) {
	return u.list(ctx, page, limit, false)
}

func (u *CategoryUsecase) list(ctx context.Context, page int, limit int, activeOnly bool) (CategoryListOutput, error) {
	if page < 1 {
		return CategoryListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return CategoryListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	categories, total, err := u.categoryRepo.List(ctx, repo.CategoryListQuery{
		Page:       page,
		Limit:      limit,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return CategoryListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CategoryListOutput{
		Categories: categories,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

type CategoryDetailOutput struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// slugでカテゴリ＋配下の公開商品を返す
func (u *CategoryUsecase) GetBySlug(ctx context.Context, slug string) (CategoryDetailOutput, error) {
	if strings.TrimSpace(slug) == "" {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	c, err := u.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !c.IsActive {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusNotFound, "category not found")
	}

	products, _, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:       1,
		Limit:      100,
		CategoryID: &c.ID,
		ActiveOnly: true,
	})
	if err != nil {
		return CategoryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CategoryDetailOutput{Category: c, Products: products}, nil
}

type CategoryInput struct {
	Name        string
	Description string
	Image       string
	IsActive    bool
}

// カテゴリ作成（slugはnameから生成）
func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	slug := Slugify(in.Name)
	if _, err := u.categoryRepo.FindBySlug(ctx, slug); err == nil {
		return model.Category{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}

	current, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Slug = Slugify(in.Name)
	current.Description = in.Description
	current.Image = in.Image
	current.IsActive = in.IsActive

	if err := u.categoryRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 配下に商品が残っているカテゴリは消せない
func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	count, err := u.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return NewHTTPError(http.StatusBadRequest, "category has products")
	}

	if err := u.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
