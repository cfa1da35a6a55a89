package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBakery struct {
	mu       sync.Mutex
	catalog  domain.Catalog
	placeErr error
	orders   [][]domain.OrderItem
}

func (s *stubBakery) FetchProducts(context.Context) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Catalog{}, s.catalog...), nil
}

func (s *stubBakery) PlaceOrder(_ context.Context, items []domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placeErr != nil {
		return s.placeErr
	}
	s.orders = append(s.orders, items)
	return nil
}

type testEnv struct {
	handler  http.Handler
	bakery   *stubBakery
	sessions *usecase.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	bakery := &stubBakery{
		catalog: domain.Catalog{
			*domain.NewProduct("Croissant", decimal.RequireFromString("2.99"), 10, "Buttery"),
			*domain.NewProduct("Pretzel", decimal.RequireFromString("3.99"), 5, "Salty"),
			*domain.NewProduct("Apple Pie", decimal.RequireFromString("12.50"), 1, ""),
		},
	}

	catalogUC := usecase.NewCatalogUC(bakery, nil, &cfg.CatalogCfg{StaleTime: time.Minute}, log)
	t.Cleanup(catalogUC.Stop)
	checkoutUC := usecase.NewCheckoutUC(bakery, catalogUC, nil, log, time.Second, usecase.CheckoutHooks{})
	sessions := usecase.NewSessionStore(&cfg.SessionCfg{TTL: time.Hour}, log)

	r := chi.NewRouter()
	NewRouter(r, log).Init(catalogUC, checkoutUC, sessions, time.Second)

	return &testEnv{handler: r, bakery: bakery, sessions: sessions}
}

// do выполняет запрос в рамках сессии sessionID (пустая строка — новая сессия).
func (env *testEnv) do(t *testing.T, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_Products(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(SessionHeader))

	res := decodeBody[CatalogResponse](t, rec)
	require.Len(t, res.Storage, 3)
	assert.Equal(t, "Croissant", res.Storage[0].Name)
	assert.InDelta(t, 2.99, res.Storage[0].Price, 1e-9)
	assert.Equal(t, int64(10), res.Storage[0].Stock)
}

func TestRouter_SessionIsReused(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/cart/Croissant", "", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeBody[CartResponse](t, rec)
	assert.Equal(t, sessionID, cart.SessionID)
	assert.Equal(t, map[string]int64{"Croissant": 3}, cart.Order)
	assert.Equal(t, "8.97", cart.Total)
	assert.False(t, cart.IsEmpty)
	assert.Equal(t, "idle", cart.State)
	assert.Equal(t, domain.RouteHome, cart.Route)
	assert.Equal(t, 1, env.sessions.Len())
}

func TestRouter_SessionFromCookie(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	sess.Order().SetQuantity("Pretzel", 2)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeBody[CartResponse](t, rec)
	assert.Equal(t, sess.ID, cart.SessionID)
	assert.Equal(t, "7.98", cart.Total)
}

func TestRouter_SetQuantity_Validation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{name: "over stock", path: "/api/v1/cart/Pretzel", body: `{"quantity":6}`, code: http.StatusBadRequest},
		{name: "negative", path: "/api/v1/cart/Pretzel", body: `{"quantity":-1}`, code: http.StatusBadRequest},
		{name: "missing quantity", path: "/api/v1/cart/Pretzel", body: `{}`, code: http.StatusBadRequest},
		{name: "empty body", path: "/api/v1/cart/Pretzel", code: http.StatusBadRequest},
		{name: "malformed", path: "/api/v1/cart/Pretzel", body: `{"quantity":"two"}`, code: http.StatusBadRequest},
		{name: "unknown product", path: "/api/v1/cart/Baguette", body: `{"quantity":1}`, code: http.StatusNotFound},
		{name: "zero is allowed", path: "/api/v1/cart/Pretzel", body: `{"quantity":0}`, code: http.StatusOK},
		{name: "full stock is allowed", path: "/api/v1/cart/Pretzel", body: `{"quantity":5}`, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPut, tt.path, "", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())

			if tt.code != http.StatusOK {
				res := decodeBody[ErrorResponse](t, rec)
				assert.Equal(t, tt.code, res.Code)
			}
		})
	}
}

func TestRouter_EscapedProductName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/Apple%20Pie/increment", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionID := rec.Header().Get(SessionHeader)

	// Остаток 1: второй инкремент игнорируется
	rec = env.do(t, http.MethodPost, "/api/v1/cart/Apple%20Pie/increment", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeBody[CartResponse](t, rec)
	assert.Equal(t, map[string]int64{"Apple Pie": 1}, cart.Order)
	assert.Equal(t, "12.50", cart.Total)
}

func TestRouter_Decrement(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/croissant/decrement", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)

	cart := decodeBody[CartResponse](t, rec)
	assert.True(t, cart.IsEmpty)

	env.do(t, http.MethodPut, "/api/v1/cart/Croissant", sessionID, `{"quantity":2}`)
	rec = env.do(t, http.MethodPost, "/api/v1/cart/croissant/decrement", sessionID, "")

	cart = decodeBody[CartResponse](t, rec)
	assert.Equal(t, map[string]int64{"Croissant": 1}, cart.Order)
}

func TestRouter_HydrateAndClear(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/cart", "", `{"order":{"Croissant":2,"Pretzel":0,"Unknown":4}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)

	cart := decodeBody[CartResponse](t, rec)
	assert.Equal(t, map[string]int64{"Croissant": 2, "Pretzel": 0, "Unknown": 4}, cart.Order)
	assert.Equal(t, "5.98", cart.Total)
	assert.Equal(t, []OrderItemResponse{
		{Name: "Croissant", Quantity: 2},
		{Name: "Unknown", Quantity: 4},
	}, cart.Items)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cart = decodeBody[CartResponse](t, rec)
	assert.Empty(t, cart.Order)
	assert.True(t, cart.IsEmpty)
	assert.Equal(t, "0.00", cart.Total)
}

func TestRouter_Checkout_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)

	res := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, usecase.MsgNothingToOrder, res.Message)

	cart := decodeBody[CartResponse](t, env.do(t, http.MethodGet, "/api/v1/cart", sessionID, ""))
	require.NotNil(t, cart.Notification)
	assert.Equal(t, "warning", cart.Notification.Level)
	assert.Equal(t, usecase.MsgNothingToOrder, cart.Notification.Message)

	rec = env.do(t, http.MethodDelete, "/api/v1/notification", sessionID, "")
	cart = decodeBody[CartResponse](t, rec)
	assert.Nil(t, cart.Notification)
	assert.Empty(t, env.bakery.orders)
}

func TestRouter_Checkout_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/cart/Croissant", "", `{"quantity":2}`)
	sessionID := rec.Header().Get(SessionHeader)
	env.do(t, http.MethodPut, "/api/v1/cart/Pretzel", sessionID, `{"quantity":1}`)

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[CheckoutResponse](t, rec)
	assert.Equal(t, domain.RouteCheckout, res.Route)
	assert.Equal(t, "9.97", res.Total)
	assert.Equal(t, []OrderItemResponse{
		{Name: "Croissant", Quantity: 2},
		{Name: "Pretzel", Quantity: 1},
	}, res.Items)

	cart := decodeBody[CartResponse](t, env.do(t, http.MethodGet, "/api/v1/cart", sessionID, ""))
	assert.True(t, cart.IsEmpty)
	assert.Equal(t, domain.RouteCheckout, cart.Route)
	assert.Equal(t, "idle", cart.State)
	assert.Equal(t, "success", cart.LastOutcome)
	assert.Nil(t, cart.Notification)
	require.Len(t, env.bakery.orders, 1)
}

func TestRouter_Checkout_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.bakery.placeErr = errors.New("bakery is closed")

	rec := env.do(t, http.MethodPut, "/api/v1/cart/Croissant", "", `{"quantity":2}`)
	sessionID := rec.Header().Get(SessionHeader)

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", sessionID, "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	res := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, usecase.MsgCheckoutFailed, res.Message)

	cart := decodeBody[CartResponse](t, env.do(t, http.MethodGet, "/api/v1/cart", sessionID, ""))
	assert.Equal(t, map[string]int64{"Croissant": 2}, cart.Order)
	assert.Equal(t, "idle", cart.State)
	assert.Equal(t, "failure", cart.LastOutcome)
	assert.Equal(t, domain.RouteHome, cart.Route)
	require.NotNil(t, cart.Notification)
	assert.Equal(t, "error", cart.Notification.Level)
	assert.Equal(t, usecase.MsgCheckoutFailed, cart.Notification.Message)
}

func TestRouter_Healthz(t *testing.T) {
	env := newTestEnv(t)

	res := decodeBody[HealthResponse](t, env.do(t, http.MethodGet, "/healthz", "", ""))
	assert.Equal(t, "ok", res.Status)
	assert.False(t, res.CatalogLoaded)

	env.do(t, http.MethodGet, "/api/v1/products", "", "")

	res = decodeBody[HealthResponse](t, env.do(t, http.MethodGet, "/healthz", "", ""))
	assert.True(t, res.CatalogLoaded)
	assert.Equal(t, 1, res.Sessions)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	for path, methods := range map[string][]string{
		"/products":              {"get"},
		"/cart":                  {"get", "put", "delete"},
		"/cart/{name}":           {"put"},
		"/cart/{name}/increment": {"post"},
		"/cart/{name}/decrement": {"post"},
		"/checkout":              {"post"},
		"/notification":          {"delete"},
	} {
		for _, method := range methods {
			assert.Contains(t, doc.Paths[path], method, "%s %s", method, path)
		}
	}
}

func TestToHTTPResponse_SessionNotFound(t *testing.T) {
	code, msg := ToHTTPResponse(e.Wrap("session-1", e.ErrSessionNotFound))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, e.ErrSessionNotFound.Error(), msg)
}

func TestToHTTPResponse_Default(t *testing.T) {
	code, msg := ToHTTPResponse(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", msg)
}
