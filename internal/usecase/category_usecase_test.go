package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CatCategoryRepoMock struct{ mock.Mock }

func (m *CatCategoryRepoMock) List(ctx context.Context, q repo.CategoryListQuery) ([]model.Category, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CatCategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CatCategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CatCategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CatCategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CatCategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatCategoryRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in CategoryUsecase tests")
}

func (m *CatCategoryRepoMock) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func newCategoryUC() (*CatCategoryRepoMock, *ProdProductRepoMock, *usecase.CategoryUsecase) {
	cRepo := new(CatCategoryRepoMock)
	pRepo := new(ProdProductRepoMock)
	return cRepo, pRepo, usecase.NewCategoryUsecase(cRepo, pRepo)
}

func TestCategoryGetBySlug_InactiveHidden(t *testing.T) {
	cRepo, _, uc := newCategoryUC()
	cRepo.On("FindBySlug", mock.Anything, "rings").Return(model.Category{
		ID: 1, Slug: "rings", IsActive: false,
	}, nil)

	_, err := uc.GetBySlug(context.Background(), "rings")
	assertErrContains(t, err, "category not found")
}

func TestCategoryGetBySlug_IncludesActiveProducts(t *testing.T) {
	cRepo, pRepo, uc := newCategoryUC()
	cRepo.On("FindBySlug", mock.Anything, "rings").Return(model.Category{
		ID: 1, Slug: "rings", IsActive: true,
	}, nil)

	catID := int64(1)
	q := repo.ProductListQuery{Page: 1, Limit: 100, CategoryID: &catID, ActiveOnly: true}
	pRepo.On("List", mock.Anything, mock.MatchedBy(func(got repo.ProductListQuery) bool {
		return got.Page == q.Page && got.Limit == q.Limit && got.ActiveOnly &&
			got.CategoryID != nil && *got.CategoryID == catID
	})).Return([]model.Product{{ID: 10, IsActive: true}}, int64(1), nil)

	out, err := uc.GetBySlug(context.Background(), "rings")
	assert.NoError(t, err)
	assert.Len(t, out.Products, 1)
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	cRepo, _, uc := newCategoryUC()
	cRepo.On("FindBySlug", mock.Anything, "rings").Return(model.Category{ID: 1}, nil)

	_, err := uc.Create(context.Background(), usecase.CategoryInput{Name: "Rings"})
	assertErrContains(t, err, "slug already exists")
}

func TestCategoryCreate_Success(t *testing.T) {
	cRepo, _, uc := newCategoryUC()
	cRepo.On("FindBySlug", mock.Anything, "necklaces").Return(model.Category{}, repo.ErrNotFound)

	var created model.Category
	cRepo.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		created = c
		return true
	})).Return(model.Category{ID: 2, Slug: "necklaces"}, nil)

	_, err := uc.Create(context.Background(), usecase.CategoryInput{Name: "Necklaces", IsActive: true})
	assert.NoError(t, err)
	assert.Equal(t, "necklaces", created.Slug)
}

func TestCategoryDelete_BlockedWhenProductsRemain(t *testing.T) {
	cRepo, _, uc := newCategoryUC()
	cRepo.On("CountProducts", mock.Anything, int64(1)).Return(int64(3), nil)

	err := uc.Delete(context.Background(), 1)
	assertErrContains(t, err, "category has products")
	cRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryDelete_Success(t *testing.T) {
	cRepo, _, uc := newCategoryUC()
	cRepo.On("CountProducts", mock.Anything, int64(1)).Return(int64(0), nil)
	cRepo.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := uc.Delete(context.Background(), 1)
	assert.NoError(t, err)
	cRepo.AssertExpectations(t)
}
