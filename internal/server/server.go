package server

import (
	"app/internal/config"
	"app/internal/handler"
	appvalidator "app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlersはルーティング対象の全ハンドラ。
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Category       *handler.CategoryHandler
	HeroSlide      *handler.HeroSlideHandler
	Order          *handler.OrderHandler
	Favorite       *handler.FavoriteHandler
	Loyalty        *handler.LoyaltyHandler
	Newsletter     *handler.NewsletterHandler
	AdminProduct   *handler.AdminProductHandler
	AdminCategory  *handler.AdminCategoryHandler
	AdminHeroSlide *handler.AdminHeroSlideHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminStats     *handler.AdminStatsHandler
}

// Newはecho本体を組み立ててルートを登録する。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = appvalidator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	corsConfig := echomw.DefaultCORSConfig
	if cfg.FEURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FEURL}
		corsConfig.AllowCredentials = true
	}
	e.Use(echomw.CORSWithConfig(corsConfig))

	registerRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
