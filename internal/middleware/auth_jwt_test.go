package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func defaultClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func runAuthJWT(req *http.Request) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := config.Config{JWTSecret: testSecret}
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	_ = middleware.AuthJWT(cfg)(next)(c)
	return rec, c
}

func TestAuthJWT_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec, _ := runAuthJWT(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BearerToken(t *testing.T) {
	token := signToken(t, testSecret, defaultClaims())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, c := runAuthJWT(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "USER", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_CookieToken(t *testing.T) {
	token := signToken(t, testSecret, defaultClaims())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})

	rec, _ := runAuthJWT(req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT_TamperedSignature(t *testing.T) {
	token := signToken(t, "wrong-secret", defaultClaims())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, _ := runAuthJWT(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := defaultClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec, _ := runAuthJWT(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_RejectsUserRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "USER")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	_ = middleware.AdminRoleGuard()(next)(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_AllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "ADMIN")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	_ = middleware.AdminRoleGuard()(next)(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
