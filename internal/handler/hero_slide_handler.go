package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// トップページのヒーローバナー
type HeroSlideHandler struct {
	uc *usecase.HeroSlideUsecase
}

// DI
func NewHeroSlideHandler(uc *usecase.HeroSlideUsecase) *HeroSlideHandler {
	return &HeroSlideHandler{uc: uc}
}

func (h *HeroSlideHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/hero-slides", h.list)
}

func (h *HeroSlideHandler) list(c echo.Context) error {
	slides, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hero_slides": slides})
}
