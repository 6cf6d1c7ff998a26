package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Sort       string
}

type ProductListOutput struct {
	Products   []model.Product `json:"products"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int64           `json:"total_pages"`
}

// 公開商品の一覧（is_active=trueのみ）
func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	return u.list(ctx, in, true)
}

// 管理画面用（非公開含む全件）
func (u *ProductUsecase) ListAdminProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	return u.list(ctx, in, false)
}

func (u *ProductUsecase) list(ctx context.Context, in ListProductsInput, activeOnly bool) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	products, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          in.Q,
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Products:   products,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: (total + int64(in.Limit) - 1) / int64(in.Limit),
	}, nil
}

// IDで公開商品を1件取得
func (u *ProductUsecase) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//非公開は存在しない扱い
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}

// slugで公開商品を1件取得
func (u *ProductUsecase) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	p, err := u.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}

// 管理者用の商品作成入力
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	SalePrice   *int64
	SKU         string
	CategoryID  int64
	Stock       int64
	Images      string
	Material    string
	IsActive    bool
	IsFeatured  bool
}

// 商品を作成（slugはnameから生成）
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name, price, sku and category are required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name, price, sku and category are required")
	}
	if in.SalePrice != nil && (*in.SalePrice <= 0 || *in.SalePrice >= in.Price) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid sale_price")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	// カテゴリの存在確認
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "category not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// SKU重複チェック
	if _, found, err := u.productRepo.FindBySKU(ctx, in.SKU); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if found {
		return model.Product{}, NewHTTPError(http.StatusConflict, "sku already exists")
	}

	// slug重複チェック
	slug := Slugify(in.Name)
	if _, err := u.productRepo.FindBySlug(ctx, slug); err == nil {
		return model.Product{}, NewHTTPError(http.StatusConflict, "slug already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:          strings.TrimSpace(in.Name),
		Slug:          slug,
		SKU:           strings.TrimSpace(in.SKU),
		Description:   in.Description,
		Price:         in.Price,
		SalePrice:     in.SalePrice,
		CategoryID:    in.CategoryID,
		StockQuantity: in.Stock,
		Images:        in.Images,
		Material:      in.Material,
		IsActive:      in.IsActive,
		IsFeatured:    in.IsFeatured,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	SalePrice   *int64
	SKU         string
	CategoryID  int64
	Images      string
	Material    string
	IsActive    bool
	IsFeatured  bool
}

// 商品を更新（slugもnameから作り直す）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if in.SalePrice != nil && (*in.SalePrice <= 0 || *in.SalePrice >= in.Price) {
		return NewHTTPError(http.StatusBadRequest, "invalid sale_price")
	}

	current, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// SKUを変えるなら重複チェック
	if in.SKU != current.SKU {
		if _, found, err := u.productRepo.FindBySKU(ctx, in.SKU); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else if found {
			return NewHTTPError(http.StatusConflict, "sku already exists")
		}
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Slug = Slugify(in.Name)
	current.SKU = strings.TrimSpace(in.SKU)
	current.Description = in.Description
	current.Price = in.Price
	current.SalePrice = in.SalePrice
	current.CategoryID = in.CategoryID
	current.Images = in.Images
	current.Material = in.Material
	current.IsActive = in.IsActive
	current.IsFeatured = in.IsFeatured

	if err := u.productRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 商品削除（ソフトデリート）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.productRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫を現在値に設定（管理画面）
func (u *ProductUsecase) SetStock(ctx context.Context, productID int64, newStock int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// nameからURL用slugを生成
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
