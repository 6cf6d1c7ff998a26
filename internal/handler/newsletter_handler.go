package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NewsletterHandler struct {
	uc *usecase.NewsletterUsecase
}

// DI
func NewNewsletterHandler(uc *usecase.NewsletterUsecase) *NewsletterHandler {
	return &NewsletterHandler{uc: uc}
}

type NewsletterSubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *NewsletterHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/newsletter", h.subscribe)
}

func (h *NewsletterHandler) subscribe(c echo.Context) error {
	var req NewsletterSubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid email"})
	}

	msg, err := h.uc.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}
