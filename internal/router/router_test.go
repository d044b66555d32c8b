package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/staynstray/internal/catalog"
	"github.com/iliyamo/staynstray/internal/config"
	"github.com/iliyamo/staynstray/internal/handler"
	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/middleware"
	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/service"
	"github.com/iliyamo/staynstray/internal/service/servicetest"
)

func newServer(t *testing.T, capacity int) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inv, err := catalog.Default()
	require.NoError(t, err)
	log := logger.Discard()

	sessions := service.NewSessionIssuer("router-secret", time.Hour)
	auth := service.NewAuthService(servicetest.NewUserStore(), sessions, bcrypt.MinCost)
	bookings := service.NewBookingService(servicetest.NewBookingStore(), inv)

	limiter := middleware.NewTokenBucket(config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}, rdb, log)
	cache := middleware.NewRedisCache(config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{http.MethodGet: true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}, rdb, log)

	e := New(log, "")
	RegisterRoutes(e, nil)
	RegisterAuth(e, handler.NewAuthHandler(auth, log), limiter)
	RegisterCatalog(e, handler.NewCatalogHandler(inv, log), cache)
	RegisterBookings(e, handler.NewBookingHandler(bookings, log), sessions)
	return e
}

func call(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBookingFlow(t *testing.T) {
	e := newServer(t, 100)

	rec := call(e, http.MethodPost, "/api/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"p4ss"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(e, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"p4ss"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = call(e, http.MethodGet, "/api/hotels", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var hotels []model.Hotel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hotels))
	require.Len(t, hotels, 3)
	assert.Equal(t, "HIT", call(e, http.MethodGet, "/api/hotels", "", "").Header().Get("X-Cache"))

	boutique := hotels[1]
	require.Equal(t, "Boutique Central Hotel", boutique.Name)

	rec = call(e, http.MethodPost, "/api/bookings",
		`{"bookingType":"hotel","hotel":{"_id":"`+boutique.ID+`","name":"`+boutique.Name+`","price":`+strconv.FormatInt(boutique.Price, 10)+`},"totalAmount":1}`, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Booking successful!", created.Message)
	assert.Equal(t, boutique.Price, created.Booking.TotalAmount)
	assert.Equal(t, model.BookingStatusConfirmed, created.Booking.Status)

	rec = call(e, http.MethodGet, "/api/my-bookings", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.Booking.ID, mine[0].ID)
}

func TestProtectedRoutes(t *testing.T) {
	e := newServer(t, 100)

	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodGet, "/api/my-bookings", "", "").Code)
	assert.Equal(t, http.StatusForbidden, call(e, http.MethodGet, "/api/my-bookings", "", "forged").Code)
	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodPost, "/api/bookings", `{}`, "").Code)
}

func TestHealthAndCORS(t *testing.T) {
	e := newServer(t, 100)

	rec := call(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodOptions, "/api/hotels", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestLoginRateLimited(t *testing.T) {
	e := newServer(t, 2)
	body := `{"email":"nobody@example.com","password":"x"}`

	assert.Equal(t, http.StatusNotFound, call(e, http.MethodPost, "/api/login", body, "").Code)
	assert.Equal(t, http.StatusNotFound, call(e, http.MethodPost, "/api/login", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(e, http.MethodPost, "/api/login", body, "").Code)
}
