package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminHeroSlideHandler struct {
	uc *usecase.HeroSlideUsecase
}

func NewAdminHeroSlideHandler(uc *usecase.HeroSlideUsecase) *AdminHeroSlideHandler {
	return &AdminHeroSlideHandler{uc: uc}
}

type HeroSlideRequest struct {
	Title     string `json:"title" validate:"required"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image" validate:"required"`
	Link      string `json:"link"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func (h *AdminHeroSlideHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/hero-slides", h.list)
	admin.POST("/hero-slides", h.create)
	admin.PUT("/hero-slides/:id", h.update)
	admin.DELETE("/hero-slides/:id", h.delete)
}

func (h *AdminHeroSlideHandler) list(c echo.Context) error {
	slides, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hero_slides": slides})
}

func (h *AdminHeroSlideHandler) create(c echo.Context) error {
	var req HeroSlideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "title and image are required"})
	}

	created, err := h.uc.Create(c.Request().Context(), usecase.HeroSlideInput{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Image:     req.Image,
		Link:      req.Link,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHeroSlideHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req HeroSlideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "title and image are required"})
	}

	if err := h.uc.Update(c.Request().Context(), id, usecase.HeroSlideInput{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Image:     req.Image,
		Link:      req.Link,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "hero slide updated"})
}

func (h *AdminHeroSlideHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "hero slide deleted"})
}
