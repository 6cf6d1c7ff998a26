package main

import (
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zl, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.HeroSlide{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.LoyaltyPoint{},
		&model.NewsletterSubscriber{},
	); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	heroSlideRepo := infraRepo.NewHeroSlideGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	loyaltyRepo := infraRepo.NewLoyaltyGormRepository(gormDB)
	newsletterRepo := infraRepo.NewNewsletterGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	tokenTTL := 7 * 24 * time.Hour
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: tokenTTL,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, loyaltyRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	meUC := auth.NewMeUsecase(userRepo)

	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, inventoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo)
	heroSlideUC := usecase.NewHeroSlideUsecase(heroSlideRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	loyaltyUC := usecase.NewLoyaltyUsecase(loyaltyRepo)
	newsletterUC := usecase.NewNewsletterUsecase(newsletterRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	adminStatsUC := usecase.NewAdminStatsUsecase(productRepo, categoryRepo, orderRepo, userRepo)

	//Handler生成
	cookieSecure := cfg.GoEnv == "prod"
	handlers := server.Handlers{
		Auth:           handler.NewAuthHandler(registerUC, loginUC, meUC, issuer, tokenTTL, cookieSecure),
		Product:        handler.NewProductHandler(productUC),
		Category:       handler.NewCategoryHandler(categoryUC),
		HeroSlide:      handler.NewHeroSlideHandler(heroSlideUC),
		Order:          handler.NewOrderHandler(orderUC),
		Favorite:       handler.NewFavoriteHandler(favoriteUC),
		Loyalty:        handler.NewLoyaltyHandler(loyaltyUC),
		Newsletter:     handler.NewNewsletterHandler(newsletterUC),
		AdminProduct:   handler.NewAdminProductHandler(productUC),
		AdminCategory:  handler.NewAdminCategoryHandler(categoryUC),
		AdminHeroSlide: handler.NewAdminHeroSlideHandler(heroSlideUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminStats:     handler.NewAdminStatsHandler(adminStatsUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
