package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type NewsNewsletterRepoMock struct{ mock.Mock }

func (m *NewsNewsletterRepoMock) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *NewsNewsletterRepoMock) Create(ctx context.Context, s model.NewsletterSubscriber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestNewsletterSubscribe_InvalidEmail(t *testing.T) {
	uc := usecase.NewNewsletterUsecase(new(NewsNewsletterRepoMock))

	_, err := uc.Subscribe(context.Background(), "not-an-email")
	assertErrContains(t, err, "invalid email")
}

func TestNewsletterSubscribe_NormalizesAndCreates(t *testing.T) {
	nRepo := new(NewsNewsletterRepoMock)
	uc := usecase.NewNewsletterUsecase(nRepo)

	nRepo.On("Exists", mock.Anything, "asha@example.com").Return(false, nil)
	nRepo.On("Create", mock.Anything, model.NewsletterSubscriber{Email: "asha@example.com"}).Return(nil)

	msg, err := uc.Subscribe(context.Background(), "  Asha@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "subscribed", msg)
	nRepo.AssertExpectations(t)
}

func TestNewsletterSubscribe_Idempotent(t *testing.T) {
	nRepo := new(NewsNewsletterRepoMock)
	uc := usecase.NewNewsletterUsecase(nRepo)

	nRepo.On("Exists", mock.Anything, "asha@example.com").Return(true, nil)

	msg, err := uc.Subscribe(context.Background(), "asha@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "already subscribed", msg)
	nRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
