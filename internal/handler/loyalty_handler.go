package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LoyaltyHandler struct {
	uc *usecase.LoyaltyUsecase
}

// DI
func NewLoyaltyHandler(uc *usecase.LoyaltyUsecase) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc}
}

func (h *LoyaltyHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/loyalty")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.myPoints)
}

func (h *LoyaltyHandler) myPoints(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
	}

	out, err := h.uc.MyPoints(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
