package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
)

// JWTの発行はmain側の実装に任せる約束
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

// LoginUsecaseはログインの処理。
type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if in.Email == "" || in.Password == "" {
		return out, ErrUnauthorized
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return out, err
	}
	// ユーザー不在もパスワード不一致も同じ401で返す
	if user == nil || !user.IsActive {
		return out, ErrUnauthorized
	}
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrUnauthorized
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	out.User = *user
	out.Token = token
	out.ExpiresAt = expiresAt
	return out, nil
}

// Meはトークンのuser_idからユーザーを引き直す。
type MeUsecase struct {
	userRepo repository.UserRepository
}

// DI
func NewMeUsecase(userRepo repository.UserRepository) *MeUsecase {
	return &MeUsecase{userRepo: userRepo}
}

func (u *MeUsecase) Execute(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrUnauthorized
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if user == nil || !user.IsActive {
		return model.User{}, ErrUnauthorized
	}
	return *user, nil
}
