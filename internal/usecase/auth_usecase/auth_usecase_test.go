package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	// DB採番の代わり
	user.ID = 123
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in auth tests")
}

type AuthLoyaltyRepoMock struct{ mock.Mock }

func (m *AuthLoyaltyRepoMock) Create(ctx context.Context, entry model.LoyaltyPoint) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuthLoyaltyRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.LoyaltyPoint, error) {
	panic("not used in auth tests")
}

func (m *AuthLoyaltyRepoMock) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	panic("not used in auth tests")
}

type fixedHasher struct{}

func (h *fixedHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fixedVerifier struct{ ok bool }

func (v *fixedVerifier) Verify(plain string, hashed string) bool { return v.ok }

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type fixedIssuer struct{}

func (i *fixedIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "token-abc", now.Add(time.Hour), nil
}

// =====================
// Register
// =====================

func TestRegister_NameRequired(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(AuthUserRepoMock), new(AuthLoyaltyRepoMock), &fixedHasher{}, &fixedClock{})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name: "  ", Email: "a@example.com", Password: "password1",
	})
	assert.Equal(t, auth.ErrNameRequired, err)
}

func TestRegister_InvalidEmail(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(AuthUserRepoMock), new(AuthLoyaltyRepoMock), &fixedHasher{}, &fixedClock{})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name: "Asha", Email: "not-an-email", Password: "password1",
	})
	assert.Equal(t, auth.ErrInvalidEmailFormat, err)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	uc := auth.NewRegisterUserUsecase(new(AuthUserRepoMock), new(AuthLoyaltyRepoMock), &fixedHasher{}, &fixedClock{})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name: "Asha", Email: "a@example.com", Password: "short",
	})
	assert.Equal(t, auth.ErrPasswordTooShort, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: 1}, nil)

	uc := auth.NewRegisterUserUsecase(userRepo, new(AuthLoyaltyRepoMock), &fixedHasher{}, &fixedClock{})

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name: "Asha", Email: "a@example.com", Password: "password1",
	})
	assert.Equal(t, auth.ErrEmailAlreadyExists, err)
}

func TestRegister_Success_GrantsWelcomeBonus(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	loyaltyRepo := new(AuthLoyaltyRepoMock)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var entry model.LoyaltyPoint
	loyaltyRepo.On("Create", mock.Anything, mock.MatchedBy(func(e model.LoyaltyPoint) bool {
		entry = e
		return true
	})).Return(nil)

	uc := auth.NewRegisterUserUsecase(userRepo, loyaltyRepo, &fixedHasher{}, &fixedClock{t: time.Now()})

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name: "Asha", Email: "a@example.com", Password: "password1",
	})
	assert.NoError(t, err)

	// 平文は保存されない
	assert.Equal(t, "hashed:password1", out.User.PasswordHash)
	assert.Equal(t, model.RoleUser, out.User.Role)
	assert.True(t, out.User.IsActive)

	// ウェルカムボーナス100ポイント
	assert.Equal(t, int64(123), entry.UserID)
	assert.Equal(t, int64(100), entry.Points)
	assert.Equal(t, model.LoyaltyPointEarned, entry.Type)
}

// =====================
// Login
// =====================

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		ID: 1, IsActive: true, PasswordHash: "x",
	}, nil)

	clock := &fixedClock{t: time.Now()}

	ucGhost := auth.NewLoginUsecase(userRepo, &fixedVerifier{ok: false}, &fixedIssuer{}, clock)
	_, err1 := ucGhost.Execute(context.Background(), auth.LoginInput{Email: "ghost@example.com", Password: "x"})

	ucWrong := auth.NewLoginUsecase(userRepo, &fixedVerifier{ok: false}, &fixedIssuer{}, clock)
	_, err2 := ucWrong.Execute(context.Background(), auth.LoginInput{Email: "a@example.com", Password: "wrong"})

	// 不在も不一致も同じエラー
	assert.Equal(t, auth.ErrUnauthorized, err1)
	assert.Equal(t, auth.ErrUnauthorized, err2)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		ID: 1, IsActive: false, PasswordHash: "x",
	}, nil)

	uc := auth.NewLoginUsecase(userRepo, &fixedVerifier{ok: true}, &fixedIssuer{}, &fixedClock{t: time.Now()})
	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "a@example.com", Password: "password1"})
	assert.Equal(t, auth.ErrUnauthorized, err)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		ID: 1, Name: "Asha", Role: model.RoleUser, IsActive: true, PasswordHash: "x",
	}, nil)

	uc := auth.NewLoginUsecase(userRepo, &fixedVerifier{ok: true}, &fixedIssuer{}, &fixedClock{t: time.Now()})

	out, err := uc.Execute(context.Background(), auth.LoginInput{Email: "a@example.com", Password: "password1"})
	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, int64(1), out.User.ID)
}

// =====================
// Me
// =====================

func TestMe_InactiveUser(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, IsActive: false}, nil)

	uc := auth.NewMeUsecase(userRepo)
	_, err := uc.Execute(context.Background(), 1)
	assert.Equal(t, auth.ErrUnauthorized, err)
}

func TestMe_Success(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "Asha", IsActive: true}, nil)

	uc := auth.NewMeUsecase(userRepo)
	user, err := uc.Execute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
}

// =====================
// bcrypt adapters
// =====================

func TestBcryptHashAndVerifyRoundTrip(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4) // テストは低コストで
	verifier := auth.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("password1")
	assert.NoError(t, err)
	assert.NotEqual(t, "password1", hashed)

	assert.True(t, verifier.Verify("password1", hashed))
	assert.False(t, verifier.Verify("password2", hashed))
}
