package seller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/hash"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

var testSecret = []byte("test-secret")

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.OfferBanner{}, &models.Order{},
		&models.OrderItem{}, &models.Seller{},
	))
	return db
}

func seedSeller(t *testing.T, db *gorm.DB) models.Seller {
	h, err := hash.HashPassword("admin123")
	require.NoError(t, err)
	s := models.Seller{Username: "admin", PasswordHash: h}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h(c)
	return rec, err
}

func TestLoginSetsJWTCookie(t *testing.T) {
	db := initTestDB(t)
	seedSeller(t, db)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	e := echo.New()

	rec, err := doJSON(e, h.Login, http.MethodPost, "/api/v1/seller/login",
		`{"username": "admin", "password": "admin123"}`, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "admin", body["username"])
	require.NotEmpty(t, body["token"])

	var authCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			authCookie = ck
		}
	}
	require.NotNil(t, authCookie)
	require.True(t, authCookie.HttpOnly)
	require.NotEmpty(t, authCookie.Value)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	db := initTestDB(t)
	seedSeller(t, db)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	e := echo.New()

	_, err := doJSON(e, h.Login, http.MethodPost, "/api/v1/seller/login",
		`{"username": "admin", "password": "wrong"}`, nil)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	db := initTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	e := echo.New()

	_, err := doJSON(e, h.Login, http.MethodPost, "/api/v1/seller/login",
		`{"username": "nobody", "password": "admin123"}`, nil)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireSellerAcceptsLoginCookie(t *testing.T) {
	db := initTestDB(t)
	seller := seedSeller(t, db)
	h := &AuthHandler{DB: db, JWTSecret: testSecret}
	e := echo.New()

	rec, err := doJSON(e, h.Login, http.MethodPost, "/api/v1/seller/login",
		`{"username": "admin", "password": "admin123"}`, nil)
	require.NoError(t, err)

	var authCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			authCookie = ck
		}
	}
	require.NotNil(t, authCookie)

	guarded := RequireSeller(testSecret)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"seller_id": c.Get("seller_id")})
	})

	rec, err = doJSON(e, guarded, http.MethodGet, "/api/v1/seller/dashboard", "",
		[]*http.Cookie{authCookie})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, float64(seller.ID), body["seller_id"])
}

func TestRequireSellerRejectsMissingCookie(t *testing.T) {
	e := echo.New()
	guarded := RequireSeller(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	_, err := doJSON(e, guarded, http.MethodGet, "/api/v1/seller/dashboard", "", nil)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireSellerRejectsForgedToken(t *testing.T) {
	e := echo.New()
	guarded := RequireSeller(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	forged := &http.Cookie{Name: CookieName, Value: "not-a-jwt"}
	_, err := doJSON(e, guarded, http.MethodGet, "/api/v1/seller/dashboard", "",
		[]*http.Cookie{forged})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	h := &AuthHandler{JWTSecret: testSecret}
	e := echo.New()

	rec, err := doJSON(e, h.Logout, http.MethodPost, "/api/v1/seller/logout", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.True(t, cookies[0].Expires.Before(time.Now()))
}
