package seller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

func doForm(e *echo.Echo, h echo.HandlerFunc, method string, form url.Values) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h(c)
	return rec, err
}

func TestCreateBannerDefaultsToActive(t *testing.T) {
	db := initTestDB(t)
	h := &BannerHandler{DB: db, UploadDir: t.TempDir()}
	e := echo.New()

	rec, err := doForm(e, h.CreateBanner, http.MethodPost, url.Values{
		"title": {"Weekend Sale"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.OfferBanner
	require.NoError(t, db.First(&got).Error)
	require.True(t, got.IsActive)
}

func TestCreateBannerStoresInactive(t *testing.T) {
	db := initTestDB(t)
	h := &BannerHandler{DB: db, UploadDir: t.TempDir()}
	e := echo.New()

	rec, err := doForm(e, h.CreateBanner, http.MethodPost, url.Values{
		"title":     {"Draft Promo"},
		"is_active": {"false"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	// An inactive banner must stay inactive in the database: a column
	// default would flip the omitted false back to true on insert.
	var got models.OfferBanner
	require.NoError(t, db.First(&got).Error)
	require.False(t, got.IsActive)
}

func TestCreateBannerRequiresTitle(t *testing.T) {
	db := initTestDB(t)
	h := &BannerHandler{DB: db, UploadDir: t.TempDir()}
	e := echo.New()

	_, err := doForm(e, h.CreateBanner, http.MethodPost, url.Values{})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
