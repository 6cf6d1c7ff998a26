package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase
	loginUC      *auth.LoginUsecase
	meUC         *auth.MeUsecase
	issuer       auth.TokenIssuer
	tokenTTL     time.Duration
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	meUC *auth.MeUsecase,
	issuer auth.TokenIssuer,
	tokenTTL time.Duration,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		meUC:         meUC,
		issuer:       issuer,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

// /auth/register のリクエストボディ。
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
}

// /auth/login のリクエストボディ。
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/me", h.me)
	g.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "name, email and password are required"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrNameRequired, auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "name, email and password are required"})
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Message: "user already exists with this email"})
		default:
			return writeError(c, err)
		}
	}

	// 登録後はそのままログイン状態にする
	now := time.Now()
	token, _, err := h.issuer.Issue(out.User.ID, out.User.Role, now)
	if err != nil {
		return writeError(c, err)
	}
	h.setTokenCookie(c, token)

	return c.JSON(http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:    out.User.ID,
			Name:  out.User.Name,
			Email: out.User.Email,
			Phone: out.User.Phone,
			Role:  string(out.User.Role),
		},
		Token: token,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "email and password are required"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if err == auth.ErrUnauthorized {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid email or password"})
		}
		return writeError(c, err)
	}

	h.setTokenCookie(c, out.Token)

	return c.JSON(http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:    out.User.ID,
			Name:  out.User.Name,
			Email: out.User.Email,
			Phone: out.User.Phone,
			Role:  string(out.User.Role),
		},
		Token: out.Token,
	})
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
	}

	user, err := h.meUC.Execute(c.Request().Context(), userID)
	if err != nil {
		if err == auth.ErrUnauthorized {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"user": UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	}})
}

func (h *AuthHandler) logout(c echo.Context) error {
	//cookieを消すだけ（トークン自体は期限まで有効）
	cookie := &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	c.SetCookie(cookie)
}
