package server

import (
	"net/http"

	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// 公開API
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.HeroSlide.RegisterRoutes(e)
	h.Newsletter.RegisterRoutes(e)

	// 認証まわり
	h.Auth.RegisterRoutes(e, cfg)

	// ログイン必須
	h.Order.RegisterRoutes(e, cfg)
	h.Favorite.RegisterRoutes(e, cfg)
	h.Loyalty.RegisterRoutes(e, cfg)

	// 管理画面
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminCategory.RegisterRoutes(e, cfg)
	h.AdminHeroSlide.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminStats.RegisterRoutes(e, cfg)
}
