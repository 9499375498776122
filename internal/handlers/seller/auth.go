// Package seller is the back office: one shopkeeper account managing the
// catalog, promo banners and orders behind a JWT cookie.
package seller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/hash"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

const (
	CookieName = "sellerToken"
	tokenTTL   = 12 * time.Hour
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var seller models.Seller
	if err := h.DB.Where("username = ?", req.Username).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !hash.CheckPassword(seller.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	exp := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub":      seller.ID,
		"username": seller.Username,
		"exp":      exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create token")
	}

	c.SetCookie(CreateCookie(CookieName, token, "/", exp))

	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"username": seller.Username,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(CookieName, "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// RequireSeller guards the back-office routes: a valid seller JWT cookie
// or 401.
func RequireSeller(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := sellerID(c, secret)
			if err != nil {
				return err
			}
			c.Set("seller_id", id)
			return next(c)
		}
	}
}

func sellerID(c echo.Context, secret []byte) (uint, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}

	return uint(sub), nil
}
